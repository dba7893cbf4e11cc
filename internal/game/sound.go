package game

// Sound names a sound effect the core asks the host to play.
type Sound int

const (
	SoundFire Sound = iota
	SoundExplode
	SoundEmpty
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundExplode:
		return "explode"
	case SoundEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// SoundSink plays effects. Implementations must never block the tick and
// silently skip sounds they cannot play.
type SoundSink interface {
	Play(Sound)
}

type silentSink struct{}

func (silentSink) Play(Sound) {}

// ShotRecord describes one fired primary shell.
type ShotRecord struct {
	Tick  int
	Level int
	Side  Side
	Ammo  AmmoID
	Angle float64
	Power float64
	Wind  float64
	X, Y  float64
}

// ShotObserver is told about every primary shot. The replay recorder is one.
type ShotObserver interface {
	OnShot(ShotRecord)
}
