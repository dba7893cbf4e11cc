// Package audio plays the game's procedurally generated sounds on oto.
package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	formatF32    = 0 // oto.FormatFloat32LE

	maxExplosions = 2 // simultaneous explosion voices before new ones are dropped
)

// Synth is a game.SoundSink. Effects are rendered once and replayed from
// memory; music is an endless generated loop.
type Synth struct {
	ctx    *oto.Context
	ready  chan struct{}
	logger *log.Logger

	SFXVolume   float64
	MusicVolume float64

	mu      sync.Mutex
	music   oto.Player
	musicOn bool
	bank    map[game.Sound][]byte

	explosions int32
}

// NewSynth opens the audio device. The device becomes usable asynchronously;
// sounds requested before that are skipped.
func NewSynth(logger *log.Logger) (*Synth, error) {
	if logger == nil {
		logger = log.Default()
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, formatF32)
	if err != nil {
		return nil, err
	}
	return &Synth{
		ctx:         ctx,
		ready:       ready,
		logger:      logger,
		SFXVolume:   0.58,
		MusicVolume: 0.12,
		bank:        Bank(),
	}, nil
}

func (s *Synth) isReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Play starts an effect on its own player and returns immediately.
func (s *Synth) Play(snd game.Sound) {
	if s == nil || !s.isReady() {
		return
	}
	data := s.bank[snd]
	if len(data) == 0 {
		return
	}
	if snd == game.SoundExplode {
		if atomic.LoadInt32(&s.explosions) >= maxExplosions {
			return
		}
		atomic.AddInt32(&s.explosions, 1)
	}
	go func() {
		if snd == game.SoundExplode {
			defer atomic.AddInt32(&s.explosions, -1)
		}
		player := s.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(s.SFXVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.logger.Debug("close sfx player", "sound", snd, "err", err)
		}
	}()
}

// ToggleMusic starts or stops the background loop and reports whether music
// is now on.
func (s *Synth) ToggleMusic() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.musicOn {
		s.stopMusicLocked()
		return false
	}
	if !s.isReady() {
		s.logger.Warn("audio device not ready, music stays off")
		return false
	}
	s.music = s.ctx.NewPlayer(newMusicReader())
	s.music.SetVolume(s.MusicVolume)
	s.music.Play()
	s.musicOn = true
	return true
}

// MusicOn reports whether the loop is playing.
func (s *Synth) MusicOn() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.musicOn
}

func (s *Synth) stopMusicLocked() {
	if s.music != nil {
		if err := s.music.Close(); err != nil {
			s.logger.Debug("close music player", "err", err)
		}
		s.music = nil
	}
	s.musicOn = false
}

// Close stops the music loop.
func (s *Synth) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopMusicLocked()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
