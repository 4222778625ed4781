package meshfree

import (
	"math/rand"
	"testing"
)

func benchPoints(rng *rand.Rand, n, dim int) Points {
	ps := make(Points, n)
	for i := range ps {
		p := make([]float64, dim)
		for d := range p {
			p[d] = rng.Float64() * 100
		}
		ps[i] = p
	}
	return ps
}

func BenchmarkNew(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	source := benchPoints(rng, 10000, 3)
	target := benchPoints(rng, 2000, 3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(source, target, WithDegree(2), WithNeighbors(16)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInterpolate(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	source := benchPoints(rng, 10000, 3)
	target := benchPoints(rng, 2000, 3)
	values := make([]float64, source.Len())
	for i := range values {
		values[i] = rng.NormFloat64()
	}

	m, err := New(source, target, WithDegree(2), WithNeighbors(16))
	if err != nil {
		b.Fatal(err)
	}

	var out []float64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err = m.InterpolateTo(values, out)
		if err != nil {
			b.Fatal(err)
		}
	}
}
