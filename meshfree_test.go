package meshfree

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshfree/kernel"
)

// line1D returns n source points at x = 0, 1, ..., n-1.
func line1D(n int) Points {
	ps := make(Points, n)
	for i := range ps {
		ps[i] = []float64{float64(i)}
	}
	return ps
}

// randomPoints returns n points uniform in [0,10)^dim with a fixed seed.
func randomPoints(rng *rand.Rand, n, dim int) Points {
	ps := make(Points, n)
	for i := range ps {
		p := make([]float64, dim)
		for d := range p {
			p[d] = rng.Float64() * 10
		}
		ps[i] = p
	}
	return ps
}

func TestMovingLeastSquares(t *testing.T) {
	t.Run("QuadraticReproduction1D", func(t *testing.T) {
		// Sources at x = 0..9 with values x^2; a degree-2 fit must recover
		// the quadratic exactly at x = 4.5.
		source := line1D(10)
		values := make([]float64, 10)
		for i := range values {
			values[i] = float64(i * i)
		}

		m, err := New(source, Points{{4.5}}, WithDegree(2))
		require.NoError(t, err)

		out, err := m.Interpolate(values)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.InDelta(t, 20.25, out[0], 1e-9)
	})

	t.Run("ConstantReproduction", func(t *testing.T) {
		// Degree 0 must reproduce constant fields exactly for any kernel.
		rng := rand.New(rand.NewSource(1))
		source := randomPoints(rng, 40, 3)
		target := randomPoints(rng, 15, 3)
		values := make([]float64, source.Len())
		for i := range values {
			values[i] = 7.5
		}

		for _, kern := range []kernel.Kernel{
			kernel.Wendland0, kernel.Wendland2, kernel.Wendland4,
			kernel.Wendland6, kernel.Wu2, kernel.Wu4,
		} {
			m, err := New(source, target, WithDegree(0), WithKernel(kern), WithNeighbors(5))
			require.NoError(t, err, "kernel %v", kern)

			out, err := m.Interpolate(values)
			require.NoError(t, err)
			for i, v := range out {
				assert.InDelta(t, 7.5, v, 1e-9, "kernel %v target %d", kern, i)
			}
		}
	})

	t.Run("LinearReproduction2D", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		source := randomPoints(rng, 60, 2)
		target := randomPoints(rng, 20, 2)

		f := func(p []float64) float64 { return 3 + 2*p[0] - 0.5*p[1] }
		values := make([]float64, source.Len())
		for i := range values {
			values[i] = f(source[i])
		}

		m, err := New(source, target, WithDegree(1), WithNeighbors(8))
		require.NoError(t, err)

		out, err := m.Interpolate(values)
		require.NoError(t, err)
		for i, v := range out {
			assert.InDelta(t, f(target[i]), v, 1e-8)
		}
	})

	t.Run("QuadraticReproduction2D", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		source := randomPoints(rng, 80, 2)
		target := randomPoints(rng, 20, 2)

		f := func(p []float64) float64 {
			return 1 - p[0] + 2*p[1] + 0.25*p[0]*p[0] - p[0]*p[1] + 0.5*p[1]*p[1]
		}
		values := make([]float64, source.Len())
		for i := range values {
			values[i] = f(source[i])
		}

		m, err := New(source, target, WithDegree(2), WithNeighbors(14), WithKernel(kernel.Wendland2))
		require.NoError(t, err)

		out, err := m.Interpolate(values)
		require.NoError(t, err)
		for i, v := range out {
			assert.InDelta(t, f(target[i]), v, 1e-7)
		}
	})

	t.Run("ExactSourceHit", func(t *testing.T) {
		// A target coinciding with source point 4: on the integer line the
		// identity field value[i] = i is the coordinate field, so a
		// degree >= 1 fit returns the recorded value exactly.
		source := line1D(10)
		values := make([]float64, 10)
		for i := range values {
			values[i] = float64(i)
		}

		for _, degree := range []int{1, 2} {
			m, err := New(source, Points{{4}}, WithDegree(degree))
			require.NoError(t, err)

			out, err := m.Interpolate(values)
			require.NoError(t, err)
			assert.InDelta(t, 4.0, out[0], 1e-9, "degree %d", degree)
		}
	})

	t.Run("Shape", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		source := randomPoints(rng, 30, 3)
		target := randomPoints(rng, 11, 3)

		m, err := New(source, target, WithDegree(1), WithNeighbors(6))
		require.NoError(t, err)

		assert.Equal(t, 3, m.Dim())
		assert.Equal(t, 30, m.SourceSize())
		assert.Equal(t, 11, m.NumTargets())
		assert.Equal(t, 6, m.NumNeighbors())
		assert.Len(t, m.IndexTable(), 11*6)
		assert.Len(t, m.WeightTable(), 11*6)

		out, err := m.Interpolate(make([]float64, 30))
		require.NoError(t, err)
		assert.Len(t, out, 11)
	})

	t.Run("IndexRange", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		source := randomPoints(rng, 25, 2)
		target := randomPoints(rng, 50, 2)

		m, err := New(source, target, WithNeighbors(7))
		require.NoError(t, err)

		for _, idx := range m.IndexTable() {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 25)
		}
	})

	t.Run("Idempotence", func(t *testing.T) {
		rng := rand.New(rand.NewSource(6))
		source := randomPoints(rng, 40, 2)
		target := randomPoints(rng, 10, 2)
		values := make([]float64, 40)
		for i := range values {
			values[i] = rng.NormFloat64()
		}

		m, err := New(source, target, WithNeighbors(10))
		require.NoError(t, err)

		first, err := m.Interpolate(values)
		require.NoError(t, err)
		second, err := m.Interpolate(values)
		require.NoError(t, err)
		assert.Equal(t, first, second) // bit-identical, no hidden state
	})

	t.Run("MinimalNeighborCount", func(t *testing.T) {
		// k equal to the basis size must construct. Grid sources with an
		// off-center interior target keep every minimal neighbor set
		// unisolvent.
		t.Run("1D", func(t *testing.T) {
			m, err := New(line1D(10), Points{{4.6}}, WithDegree(2), WithNeighbors(3))
			require.NoError(t, err)
			assert.Equal(t, 3, m.NumNeighbors())

			_, err = New(line1D(10), Points{{4.6}}, WithDegree(0), WithNeighbors(1))
			require.NoError(t, err)
		})

		t.Run("2D", func(t *testing.T) {
			var source Points
			for x := 0; x < 5; x++ {
				for y := 0; y < 5; y++ {
					source = append(source, []float64{float64(x), float64(y)})
				}
			}
			m, err := New(source, Points{{2.6, 2.6}}, WithDegree(1), WithNeighbors(3))
			require.NoError(t, err)
			assert.Equal(t, 3, m.NumNeighbors())
		})

		t.Run("3D", func(t *testing.T) {
			var source Points
			for x := 0; x < 4; x++ {
				for y := 0; y < 4; y++ {
					for z := 0; z < 4; z++ {
						source = append(source, []float64{float64(x), float64(y), float64(z)})
					}
				}
			}
			m, err := New(source, Points{{1.6, 1.6, 1.6}}, WithDegree(1), WithNeighbors(4))
			require.NoError(t, err)
			assert.Equal(t, 4, m.NumNeighbors())
		})
	})

	t.Run("DefaultNeighborCount", func(t *testing.T) {
		source := line1D(10)

		m, err := New(source, Points{{2.5}}, WithDegree(2))
		require.NoError(t, err)
		assert.Equal(t, 3, m.NumNeighbors()) // basis size for dim=1, degree=2
	})

	t.Run("ConcurrentInterpolate", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		source := randomPoints(rng, 50, 2)
		target := randomPoints(rng, 30, 2)

		m, err := New(source, target, WithNeighbors(10))
		require.NoError(t, err)

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			values := make([]float64, 50)
			for i := range values {
				values[i] = rng.NormFloat64()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := m.Interpolate(values)
				assert.NoError(t, err)
				assert.Len(t, out, 30)
			}()
		}
		wg.Wait()
	})

	t.Run("InterpolateToReusesBuffer", func(t *testing.T) {
		source := line1D(10)
		values := make([]float64, 10)
		for i := range values {
			values[i] = float64(i)
		}

		m, err := New(source, Points{{1.5}, {7.25}}, WithDegree(1))
		require.NoError(t, err)

		buf := make([]float64, 64) // oversized, stale contents
		for i := range buf {
			buf[i] = -1
		}
		out, err := m.InterpolateTo(values, buf)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.InDelta(t, 1.5, out[0], 1e-9)
		assert.InDelta(t, 7.25, out[1], 1e-9)
	})
}

func TestNewValidation(t *testing.T) {
	source := line1D(10)
	target := Points{{4.5}}

	t.Run("NeighborCountTooLarge", func(t *testing.T) {
		_, err := New(source, target, WithNeighbors(11))
		var nErr *ErrInvalidNeighborCount
		require.ErrorAs(t, err, &nErr)
		assert.Equal(t, 11, nErr.K)
		assert.Equal(t, 10, nErr.SourceSize)
	})

	t.Run("NeighborCountNonPositive", func(t *testing.T) {
		// An explicit zero is a configuration mistake, not a request for
		// the derived default.
		for _, k := range []int{0, -1} {
			_, err := New(source, target, WithNeighbors(k))
			var nErr *ErrInvalidNeighborCount
			require.ErrorAs(t, err, &nErr, "k=%d", k)
			assert.Equal(t, k, nErr.K)
		}
	})

	t.Run("NegativeDegree", func(t *testing.T) {
		_, err := New(source, target, WithDegree(-1))
		require.ErrorIs(t, err, ErrInvalidDegree)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := New(source, Points{{1, 2}})
		var dErr *ErrDimensionMismatch
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, 1, dErr.Expected)
		assert.Equal(t, 2, dErr.Actual)
	})

	t.Run("EmptySource", func(t *testing.T) {
		_, err := New(Points{}, target)
		require.ErrorIs(t, err, ErrEmptyPointSet)
	})

	t.Run("EmptyTarget", func(t *testing.T) {
		_, err := New(source, Points{})
		require.ErrorIs(t, err, ErrEmptyPointSet)
	})

	t.Run("RaggedPointSet", func(t *testing.T) {
		_, err := New(Points{{0, 0}, {1}}, Points{{1, 1}})
		var dErr *ErrDimensionMismatch
		require.ErrorAs(t, err, &dErr)
	})

	t.Run("RaggedFlatArena", func(t *testing.T) {
		// Seven coordinates cannot hold whole 2-D points; the trailing
		// value must be rejected, not dropped.
		flat := FlatPoints{Coords: []float64{0, 0, 1, 0, 0, 1, 1}, D: 2}
		_, err := New(flat, Points{{0.5, 0.5}})
		var dErr *ErrDimensionMismatch
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, 2, dErr.Expected)
		assert.Equal(t, 1, dErr.Actual)
	})
}

func TestInterpolateValidation(t *testing.T) {
	source := line1D(10)

	m, err := New(source, Points{{4.5}}, WithDegree(2))
	require.NoError(t, err)

	_, err = m.Interpolate(make([]float64, 8))
	var vErr *ErrValueCountMismatch
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 10, vErr.Expected)
	assert.Equal(t, 8, vErr.Actual)
}

func TestFlatPoints(t *testing.T) {
	// Same geometry through both point-set adapters must produce the same
	// interpolation.
	coords := []float64{0, 0, 1, 0, 0, 1, 1, 1, 2, 0, 0, 2, 2, 2, 2, 1, 1, 2}
	flat := FlatPoints{Coords: coords, D: 2}
	sliced := make(Points, flat.Len())
	for i := range sliced {
		sliced[i] = flat.At(i)
	}
	target := Points{{0.7, 0.8}} // distinct neighbor distances, so slot order is deterministic
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	a, err := New(flat, target, WithDegree(1), WithNeighbors(4))
	require.NoError(t, err)
	b, err := New(sliced, target, WithDegree(1), WithNeighbors(4))
	require.NoError(t, err)

	outA, err := a.Interpolate(values)
	require.NoError(t, err)
	outB, err := b.Interpolate(values)
	require.NoError(t, err)
	assert.Equal(t, outB, outA)
}
