package audio

import (
	"math"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

// Bank renders every effect the core can ask for.
func Bank() map[game.Sound][]byte {
	return map[game.Sound][]byte{
		game.SoundFire:    genFire(),
		game.SoundExplode: genExplode(),
		game.SoundEmpty:   genEmpty(),
	}
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*8 + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat bends values past +/-1 back under the ceiling.
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 + 0.5/(-x)
	}
	return x - x*x*x/3
}

func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1 - (progress-attack)/decay*(1-sustain)
	case progress < 1-release:
		return sustain
	default:
		return sustain * (1 - (progress-(1-release))/release)
	}
}

// lcg advances seed and returns white noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(frames int) []byte { return make([]byte, frames*8) }

// genFire: a short cannon thump with a noisy blast on top.
func genFire() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x7a11)
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := 120 * math.Pow(45.0/120.0, p)
		phase += 2 * math.Pi * freq / SampleRate
		thump := math.Sin(phase) * math.Exp(-p*6) * 0.6
		lp = lp*0.7 + lcg(&seed)*0.3
		blast := lp * math.Exp(-p*14) * 0.5
		putStereoF32(buf, i, softSat(thump+blast))
	}
	return buf
}

// genExplode: sub boom, crack and a rumbling tail.
func genExplode() []byte {
	n := int(0.6 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xb00)
	lp1, lp2, rum := 0.0, 0.0, 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := 140 * math.Pow(28.0/140.0, p*2)
		phase += 2 * math.Pi * freq / SampleRate
		sub := math.Sin(phase) * math.Exp(-p*5) * 0.55

		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * 0.8
		}
		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*5) * 0.4
		rum = rum*0.95 + lcg(&seed)*0.05
		tail := rum * math.Exp(-p*2.5) * 0.2

		putStereoF32(buf, i, softSat((sub+crack+body+tail)*0.86))
	}
	return buf
}

// genEmpty: a dry two-tick click.
func genEmpty() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.2, 0.0, 0.1)
		if p > 0.55 {
			env = adsr((p-0.55)/0.45, 0.02, 0.3, 0.0, 0.1) * 0.7
		}
		s := math.Sin(2*math.Pi*1800*t) * env * 0.35
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
