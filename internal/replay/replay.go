// Package replay records fired shots so a seeded match can be inspected or
// re-run later.
package replay

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

// FormatVersion is bumped whenever File changes incompatibly.
const FormatVersion = 1

// Shot is the stored form of a game.ShotRecord.
type Shot struct {
	Tick  int     `msgpack:"t"`
	Level int     `msgpack:"l"`
	Side  string  `msgpack:"s"`
	Ammo  string  `msgpack:"a"`
	Angle float64 `msgpack:"ang"`
	Power float64 `msgpack:"pow"`
	Wind  float64 `msgpack:"w"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
}

// File is one recorded match.
type File struct {
	Version int    `msgpack:"v"`
	Seed    int64  `msgpack:"seed"`
	Label   string `msgpack:"label,omitempty"`
	Shots   []Shot `msgpack:"shots"`
}

// Recorder is a game.ShotObserver that buffers every shot.
type Recorder struct {
	file File
}

// NewRecorder starts an empty recording for a match seeded with seed.
func NewRecorder(seed int64, label string) *Recorder {
	return &Recorder{file: File{Version: FormatVersion, Seed: seed, Label: label}}
}

func (r *Recorder) OnShot(s game.ShotRecord) {
	r.file.Shots = append(r.file.Shots, Shot{
		Tick:  s.Tick,
		Level: s.Level,
		Side:  s.Side.String(),
		Ammo:  string(s.Ammo),
		Angle: s.Angle,
		Power: s.Power,
		Wind:  s.Wind,
		X:     s.X,
		Y:     s.Y,
	})
}

// Len is the number of recorded shots.
func (r *Recorder) Len() int { return len(r.file.Shots) }

// File returns the recording so far.
func (r *Recorder) File() File { return r.file }

// WriteTo encodes the recording as msgpack.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := msgpack.NewEncoder(cw).Encode(&r.file); err != nil {
		return cw.n, fmt.Errorf("encode replay: %w", err)
	}
	return cw.n, nil
}

// Read decodes a recording written by WriteTo.
func Read(rd io.Reader) (File, error) {
	var f File
	if err := msgpack.NewDecoder(rd).Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode replay: %w", err)
	}
	if f.Version != FormatVersion {
		return File{}, fmt.Errorf("replay version %d, want %d", f.Version, FormatVersion)
	}
	return f, nil
}

// BySide counts shots per side name.
func (f File) BySide() map[string]int {
	out := make(map[string]int, 2)
	for _, s := range f.Shots {
		out[s.Side]++
	}
	return out
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
