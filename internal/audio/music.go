package audio

import "math"

// A minor march loop: four chords, one per bar.
var marchChords = [][]float64{
	{110.00, 130.81, 164.81}, // Am
	{87.31, 110.00, 130.81},  // F
	{98.00, 123.47, 146.83},  // G
	{82.41, 103.83, 123.47},  // E
}

const (
	marchTempo    = 104.0 // bpm
	beatsPerBar   = 4
	musicHeadroom = 0.6
)

// musicReader generates the background loop forever.
type musicReader struct {
	t    float64
	seed uint64
	lp   float64
}

func newMusicReader() *musicReader {
	return &musicReader{seed: 0x5eed}
}

func (m *musicReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	for i := 0; i < frames; i++ {
		putStereoF32(p, i, softSat(m.next()*musicHeadroom))
	}
	return frames * 8, nil
}

// next renders one sample and advances the clock.
func (m *musicReader) next() float64 {
	beatLen := 60 / marchTempo
	beat := int(m.t / beatLen)
	trig := m.t - float64(beat)*beatLen
	chord := marchChords[(beat/beatsPerBar)%len(marchChords)]

	// snare-ish noise on 2 and 4
	snare := 0.0
	if beat%2 == 1 && trig < 0.12 {
		m.lp = m.lp*0.6 + lcg(&m.seed)*0.4
		snare = m.lp * math.Exp(-trig*30) * 0.25
	}
	// kick on 1 and 3
	kick := 0.0
	if beat%2 == 0 && trig < 0.2 {
		kick = math.Sin(2*math.Pi*60*trig*(1-trig*2)) * math.Exp(-trig*16) * 0.5
	}
	// low pad
	pad := 0.0
	for _, f := range chord {
		pad += math.Sin(2 * math.Pi * f * m.t)
	}
	pad *= 0.06
	// bass pulse on the root
	bass := math.Sin(2*math.Pi*chord[0]/2*m.t) * math.Exp(-trig*4) * 0.25

	m.t += 1.0 / SampleRate
	return kick + snare + pad + bass
}
