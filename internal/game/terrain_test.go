package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestGenerateTerrain_WithinBoundsAndCoversWidth(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		ter := GenerateTerrain(1024, 576, cfg.Terrain, rng)

		last := ter.SampleX(len(ter.Heights) - 1)
		if last < ter.Width {
			t.Fatalf("seed %d: last sample at x=%.0f does not reach width %.0f", seed, last, ter.Width)
		}
		for i, h := range ter.Heights {
			if h < ter.MinHeight-1e-9 || h > ter.MaxHeight+1e-9 {
				t.Fatalf("seed %d: sample %d = %.2f outside [%.2f, %.2f]", seed, i, h, ter.MinHeight, ter.MaxHeight)
			}
		}
	}
}

func TestGenerateTerrain_DeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig().Terrain
	a := GenerateTerrain(800, 600, cfg, rand.New(rand.NewSource(9)))
	b := GenerateTerrain(800, 600, cfg, rand.New(rand.NewSource(9)))
	if len(a.Heights) != len(b.Heights) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Heights), len(b.Heights))
	}
	for i := range a.Heights {
		if a.Heights[i] != b.Heights[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a.Heights[i], b.Heights[i])
		}
	}
}

func TestSmooth_KeepsEndpoints(t *testing.T) {
	ter := &Terrain{Resolution: 5, Heights: []float64{100, 0, 10, 0, 200}}
	ter.Smooth(1)
	if ter.Heights[0] != 100 || ter.Heights[4] != 200 {
		t.Fatalf("endpoints moved: %v", ter.Heights)
	}
	want := (0 + 10*1.5 + 0) / 3.5
	if math.Abs(ter.Heights[2]-want) > 1e-9 {
		t.Fatalf("middle sample = %v, want %v", ter.Heights[2], want)
	}
}

func TestHeightAt_InterpolatesAndClamps(t *testing.T) {
	ter := &Terrain{Width: 20, Height: 300, Resolution: 10, Heights: []float64{100, 200, 150}}
	cases := []struct {
		x, want float64
	}{
		{0, 100},
		{5, 150},
		{10, 200},
		{15, 175},
		{-40, 100},
		{20, 150},
		{500, 150},
	}
	for _, c := range cases {
		if got := ter.HeightAt(c.x); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("HeightAt(%v) = %v, want %v", c.x, got, c.want)
		}
	}

	var missing *Terrain
	if missing.HeightAt(10) != 0 {
		t.Error("nil terrain should report 0")
	}
	empty := &Terrain{Height: 300}
	if got := empty.HeightAt(10); got != 250 {
		t.Errorf("empty terrain HeightAt = %v, want 250", got)
	}
}

func TestDeform_CosineCraterAndFloor(t *testing.T) {
	ter := FlatTerrain(200, 300, 5, 250)
	touched := ter.Deform(100, 20, 10)
	if touched == 0 {
		t.Fatal("deform touched no samples")
	}
	if got := ter.HeightAt(100); math.Abs(got-260) > 1e-9 {
		t.Fatalf("crater centre = %v, want 260", got)
	}
	if got := ter.HeightAt(120); got != 250 {
		t.Fatalf("sample at the radius moved to %v", got)
	}
	if got := ter.HeightAt(70); got != 250 {
		t.Fatalf("sample outside the radius moved to %v", got)
	}
	mid := ter.HeightAt(110)
	if mid <= 250 || mid >= 260 {
		t.Fatalf("half-radius sample = %v, want strictly between 250 and 260", mid)
	}

	ter.Deform(100, 20, 1000)
	if got := ter.HeightAt(100); got != ter.Floor {
		t.Fatalf("deep crater = %v, want floor %v", got, ter.Floor)
	}
}

func TestDeform_NoopOnBadRadius(t *testing.T) {
	ter := FlatTerrain(100, 300, 5, 200)
	if n := ter.Deform(50, 0, 10); n != 0 {
		t.Fatalf("zero radius touched %d samples", n)
	}
	if ter.MaxSlope() != 0 {
		t.Fatal("flat terrain changed")
	}
}

// checkContinuity samples pairs at most one resolution step apart and
// asserts their heights differ by no more than the steepest adjacent pair.
func checkContinuity(t *testing.T, ter *Terrain, rng *rand.Rand, label string) {
	t.Helper()
	bound := ter.MaxSlope() + 1e-9
	for i := 0; i < 5000; i++ {
		x := rng.Float64() * ter.Width
		y := x + rng.Float64()*ter.Resolution
		if d := math.Abs(ter.HeightAt(x) - ter.HeightAt(y)); d > bound {
			t.Fatalf("%s: |h(%.3f)-h(%.3f)| = %.4f exceeds max slope %.4f", label, x, y, d, bound)
		}
	}
}

func TestHeightAt_Continuous(t *testing.T) {
	cfg := DefaultConfig().Terrain
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		ter := GenerateTerrain(1024, 576, cfg, rng)
		checkContinuity(t, ter, rng, "generated")
		if seed == 1 {
			ter.Deform(512, 40, 22)
			ter.Deform(0, 35, 18)
			checkContinuity(t, ter, rng, "cratered")
		}
	}
}
