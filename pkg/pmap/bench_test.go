package pmap

import "testing"

func BenchmarkPMap_Insert(b *testing.B) {
	m := NewAuto[int, int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m = m.Insert(i, i, true)
	}
}

func BenchmarkPMap_Search(b *testing.B) {
	m := NewAuto[int, int]()
	for i := 0; i < 10_000; i++ {
		m = m.Insert(i, i, true)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Search(i % 10_000)
	}
}

func BenchmarkPMap_Erase(b *testing.B) {
	m := NewAuto[int, int]()
	for i := 0; i < 10_000; i++ {
		m = m.Insert(i, i, true)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Erase(i % 10_000)
	}
}

func BenchmarkPMap_Iterate(b *testing.B) {
	m := NewAuto[int, int]()
	for i := 0; i < 10_000; i++ {
		m = m.Insert(i, i, true)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := m.NewIterator()
		for it.Next() {
			_, _ = it.Current()
		}
	}
}
