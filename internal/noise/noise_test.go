package noise

import (
	"math"
	"math/rand"
	"testing"
)

func TestNoise2DDeterministic(t *testing.T) {
	g := New(42)
	var results [100]float64
	for i := range results {
		results[i] = g.Noise2D(1.5, 2.7)
	}
	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("Noise2D not deterministic: results[0]=%f, results[%d]=%f", first, i, results[i])
		}
	}
}

func TestNoise3DDeterministic(t *testing.T) {
	g := New(42)
	var results [100]float64
	for i := range results {
		results[i] = g.Noise3D(1.5, 2.7, -3.3)
	}
	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("Noise3D not deterministic: results[0]=%f, results[%d]=%f", first, i, results[i])
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	const samples = 50
	for i := 0; i < samples; i++ {
		x := float64(i) * 0.37
		if a.Noise2D(x, x) == b.Noise2D(x, x) {
			same++
		}
	}
	if same == samples {
		t.Error("different seeds produced identical noise at every sample")
	}
}

func TestNoise2DRange(t *testing.T) {
	g := New(7)
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 2000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		v := g.Noise2D(x, y)
		if v < -1.0001 || v > 1.0001 {
			t.Fatalf("Noise2D(%f,%f) = %f out of [-1,1]", x, y, v)
		}
	}
}

func TestNoise3DRange(t *testing.T) {
	g := New(7)
	rng := rand.New(rand.NewSource(54321))
	for i := 0; i < 2000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := g.Noise3D(x, y, z)
		if v < -1.0001 || v > 1.0001 {
			t.Fatalf("Noise3D(%f,%f,%f) = %f out of [-1,1]", x, y, z, v)
		}
	}
}

func TestNoise2DContinuity(t *testing.T) {
	g := New(42)
	v1 := g.Noise2D(1.0, 1.0)
	v2 := g.Noise2D(1.01, 1.0)
	if diff := math.Abs(v1 - v2); diff >= 0.2 {
		t.Errorf("Noise2D not continuous: v1=%f v2=%f diff=%f", v1, v2, diff)
	}
}

func TestFbm2DDeterministicAndNormalized(t *testing.T) {
	g := New(99)
	v1 := g.Fbm2D(3.2, -1.7, 4, 2.0, 0.5)
	v2 := g.Fbm2D(3.2, -1.7, 4, 2.0, 0.5)
	if v1 != v2 {
		t.Errorf("Fbm2D not deterministic: %f != %f", v1, v2)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		x := rng.Float64()*50 - 25
		y := rng.Float64()*50 - 25
		v := g.Fbm2D(x, y, 4, 2.0, 0.5)
		if v < -1.5 || v > 1.5 {
			t.Fatalf("Fbm2D(%f,%f) = %f looks unnormalized", x, y, v)
		}
	}
}

func TestFbm3DDeterministic(t *testing.T) {
	g := New(5)
	v1 := g.Fbm3D(1, 2, 3, 3, 2.0, 0.5)
	v2 := g.Fbm3D(1, 2, 3, 3, 2.0, 0.5)
	if v1 != v2 {
		t.Errorf("Fbm3D not deterministic: %f != %f", v1, v2)
	}
}

func BenchmarkNoise2D(b *testing.B) {
	g := New(1)
	for i := 0; i < b.N; i++ {
		g.Noise2D(float64(i)*0.13, float64(i)*0.07)
	}
}

func BenchmarkFbm3D(b *testing.B) {
	g := New(1)
	for i := 0; i < b.N; i++ {
		g.Fbm3D(float64(i)*0.13, 10, float64(i)*0.07, 4, 2.0, 0.5)
	}
}
