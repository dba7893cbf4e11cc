package game

import (
	"math"
	"math/rand"
)

// Terrain is a height-sampled ground profile. Heights are screen y values
// (larger = lower on screen), one sample every Resolution pixels.
type Terrain struct {
	Width      float64
	Height     float64 // vertical extent of the playfield
	Resolution float64
	Heights    []float64

	MinHeight float64 // highest allowed ground at generation (smallest y)
	MaxHeight float64 // lowest allowed ground at generation
	Floor     float64 // deformation never pushes a sample past this
}

// GenerateTerrain walks left to right applying small upward-biased random
// steps, clamps every sample, then smooths.
func GenerateTerrain(width, height float64, cfg TerrainConfig, rng *rand.Rand) *Terrain {
	t := &Terrain{
		Width:      width,
		Height:     height,
		Resolution: cfg.Resolution,
		MinHeight:  height * cfg.MinHeightFrac,
		MaxHeight:  height - cfg.BottomMargin,
		Floor:      height + cfg.FloorMargin,
	}
	n := int(math.Ceil(width/cfg.Resolution)) + 1
	t.Heights = make([]float64, 0, n)

	cur := height * (cfg.StartMin + rng.Float64()*(cfg.StartMax-cfg.StartMin))
	for x := 0.0; x <= width; x += cfg.Resolution {
		t.Heights = append(t.Heights, cur)
		cur += (rng.Float64() - cfg.StepBias) * cfg.StepScale
		cur = clamp(cur, t.MinHeight, t.MaxHeight)
	}
	// Cover the right edge when width is not a multiple of the resolution.
	if float64(len(t.Heights))*cfg.Resolution < width+cfg.Resolution {
		t.Heights = append(t.Heights, cur)
	}
	t.Smooth(cfg.SmoothPasses)
	return t
}

// FlatTerrain returns a level profile at height y. Used by tests and replays
// that need a predictable ground line.
func FlatTerrain(width, height, resolution, y float64) *Terrain {
	n := int(math.Ceil(width/resolution)) + 1
	t := &Terrain{
		Width:      width,
		Height:     height,
		Resolution: resolution,
		Heights:    make([]float64, n),
		MinHeight:  y,
		MaxHeight:  y,
		Floor:      height + 50,
	}
	for i := range t.Heights {
		t.Heights[i] = y
	}
	return t
}

// Smooth replaces each interior sample with (prev + 1.5*cur + next)/3.5 per
// pass. Endpoints are kept.
func (t *Terrain) Smooth(passes int) {
	n := len(t.Heights)
	if n < 3 {
		return
	}
	buf := make([]float64, n)
	for p := 0; p < passes; p++ {
		buf[0] = t.Heights[0]
		buf[n-1] = t.Heights[n-1]
		for i := 1; i < n-1; i++ {
			buf[i] = (t.Heights[i-1] + t.Heights[i]*1.5 + t.Heights[i+1]) / 3.5
		}
		t.Heights, buf = buf, t.Heights
	}
}

// SampleX is the horizontal position of sample i.
func (t *Terrain) SampleX(i int) float64 { return float64(i) * t.Resolution }

// HeightAt linearly interpolates the ground height under x. x is clamped into
// the playfield; on or past the last sample its height is returned.
func (t *Terrain) HeightAt(x float64) float64 {
	if t == nil {
		return 0
	}
	if len(t.Heights) == 0 {
		return t.Height - 50
	}
	x = clamp(x, 0, t.Width)
	idx := int(math.Floor(x / t.Resolution))
	last := len(t.Heights) - 1
	if idx >= last {
		return t.Heights[last]
	}
	x1 := t.SampleX(idx)
	x2 := t.SampleX(idx + 1)
	if x2 == x1 {
		return t.Heights[idx]
	}
	f := (x - x1) / (x2 - x1)
	return t.Heights[idx] + (t.Heights[idx+1]-t.Heights[idx])*f
}

// Deform adds depth*(cos(d/radius*pi)+1)/2 to every sample within radius of
// impactX, clamping at the floor. Positive depth digs a crater.
func (t *Terrain) Deform(impactX, radius, depth float64) (touched int) {
	if len(t.Heights) == 0 || radius <= 0 {
		return 0
	}
	start := int(math.Max(0, math.Floor((impactX-radius)/t.Resolution)))
	end := int(math.Min(float64(len(t.Heights)-1), math.Ceil((impactX+radius)/t.Resolution)))
	for i := start; i <= end; i++ {
		d := math.Abs(t.SampleX(i) - impactX)
		if d >= radius {
			continue
		}
		f := (math.Cos(d/radius*math.Pi) + 1) / 2
		t.Heights[i] = math.Min(t.Floor, t.Heights[i]+depth*f)
		touched++
	}
	return touched
}

// MaxSlope returns the largest height difference between adjacent samples.
func (t *Terrain) MaxSlope() float64 {
	m := 0.0
	for i := 1; i < len(t.Heights); i++ {
		m = math.Max(m, math.Abs(t.Heights[i]-t.Heights[i-1]))
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
