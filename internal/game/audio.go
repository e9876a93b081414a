package game

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sirupsen/logrus"
)

const audioSampleRate = 44100

// Background chase loops tighten as the board empties. Thresholds are
// fractions of collectibles still remaining.
var chaseTiers = []struct {
	fraction float64
	cue      string
}{
	{0.75, "ghost_chase"},
	{0.50, "ghost_chase2"},
	{0.25, "ghost_chase3"},
	{0.10, "ghost_chase4"},
	{0.00, "ghost_chase5"},
}

type cue struct {
	raw    []byte
	loop   bool
	player *audio.Player
}

// AudioManager owns every named cue. With audio disabled (the default —
// enable with PACMAN_ENABLE_AUDIO=1) all methods are no-ops and IsPlaying
// always reports false, which lets the start jingle gate resolve
// instantly in tests.
type AudioManager struct {
	ctx  *audio.Context
	cues map[string]*cue
}

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

func getAudioContext() *audio.Context {
	if os.Getenv("PACMAN_DISABLE_AUDIO") == "1" {
		return nil
	}
	if os.Getenv("PACMAN_ENABLE_AUDIO") != "1" {
		return nil
	}
	audioOnce.Do(func() {
		audioCtx = audio.NewContext(audioSampleRate)
	})
	return audioCtx
}

// cueSpecs names every sound the game uses, with a synthesized beep
// fallback so missing files never break the run.
var cueSpecs = []struct {
	name       string
	loop       bool
	fallbackMs int
	fallbackHz float64
}{
	{"start", false, 2000, 523},
	{"dot1", false, 50, 880},
	{"dot2", false, 50, 988},
	{"power_dot", false, 150, 660},
	{"ghost_blue", true, 400, 330},
	{"ghost_chase", true, 500, 196},
	{"ghost_chase2", true, 450, 220},
	{"ghost_chase3", true, 400, 247},
	{"ghost_chase4", true, 350, 262},
	{"ghost_chase5", true, 300, 294},
	{"ghost_eat", false, 200, 440},
	{"ghost_retreat", true, 300, 392},
	{"fruit", false, 150, 740},
	{"die", false, 1000, 220},
	{"cutscene", false, 4300, 784},
}

// NewAudioManager loads every cue from soundsDir, synthesizing fallbacks
// for files that are missing or unreadable.
func NewAudioManager(soundsDir string) *AudioManager {
	if soundsDir == "" {
		soundsDir = "assets/sounds"
	}
	am := &AudioManager{ctx: getAudioContext(), cues: make(map[string]*cue)}
	for _, spec := range cueSpecs {
		raw, err := os.ReadFile(filepath.Join(soundsDir, spec.name+".wav"))
		if err != nil {
			raw = synthBeepWAV(audioSampleRate, spec.fallbackMs, spec.fallbackHz)
		}
		am.cues[spec.name] = &cue{raw: raw, loop: spec.loop}
	}
	return am
}

// Play starts a cue from the beginning; an already-running loop is left
// alone so restarting the same background track every frame is safe.
func (am *AudioManager) Play(name string) {
	if am == nil || am.ctx == nil {
		return
	}
	c, ok := am.cues[name]
	if !ok {
		logrus.Warnf("unknown audio cue %q", name)
		return
	}
	if c.loop && c.player != nil && c.player.IsPlaying() {
		return
	}
	if c.player == nil {
		stream, err := wav.DecodeWithSampleRate(audioSampleRate, bytes.NewReader(c.raw))
		if err != nil {
			logrus.Warnf("decode audio cue %q: %v", name, err)
			return
		}
		if c.loop {
			c.player, err = am.ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
		} else {
			c.player, err = am.ctx.NewPlayer(stream)
		}
		if err != nil {
			logrus.Warnf("audio player for %q: %v", name, err)
			return
		}
	}
	_ = c.player.Rewind()
	c.player.Play()
}

// Stop pauses a cue if it is running.
func (am *AudioManager) Stop(name string) {
	if am == nil || am.ctx == nil {
		return
	}
	if c, ok := am.cues[name]; ok && c.player != nil && c.player.IsPlaying() {
		c.player.Pause()
	}
}

// IsPlaying reports whether the named cue is currently audible.
func (am *AudioManager) IsPlaying(name string) bool {
	if am == nil || am.ctx == nil {
		return false
	}
	c, ok := am.cues[name]
	return ok && c.player != nil && c.player.IsPlaying()
}

// StopAll silences everything; used on mode transitions and game over.
func (am *AudioManager) StopAll() {
	if am == nil || am.ctx == nil {
		return
	}
	for _, c := range am.cues {
		if c.player != nil && c.player.IsPlaying() {
			c.player.Pause()
		}
	}
}

// chaseCueFor maps the remaining-collectible fraction to the background
// chase loop for that stretch of the level. Exact tier boundaries
// already belong to the heavier tier below them.
func chaseCueFor(fraction float64) string {
	for _, tier := range chaseTiers {
		if fraction > tier.fraction {
			return tier.cue
		}
	}
	return chaseTiers[len(chaseTiers)-1].cue
}

// stopChaseLoopsExcept pauses every chase tier but the one that should be
// running, so tier switches never stack loops.
func (am *AudioManager) stopChaseLoopsExcept(keep string) {
	for _, tier := range chaseTiers {
		if tier.cue != keep {
			am.Stop(tier.cue)
		}
	}
}

// synthBeepWAV returns a minimal 16-bit PCM mono WAV of a sine beep.
func synthBeepWAV(sampleRate int, durationMs int, freq float64) []byte {
	numSamples := int(float64(sampleRate) * float64(durationMs) / 1000.0)
	byteRate := sampleRate * 2 // mono 16-bit
	blockAlign := 2
	dataSize := numSamples * 2
	totalSize := 44 + dataSize
	buf := make([]byte, totalSize)
	copy(buf[0:4], []byte{'R', 'I', 'F', 'F'})
	putLE32(buf[4:8], uint32(totalSize-8))
	copy(buf[8:12], []byte{'W', 'A', 'V', 'E'})
	copy(buf[12:16], []byte{'f', 'm', 't', ' '})
	putLE32(buf[16:20], 16) // PCM chunk size
	putLE16(buf[20:22], 1)  // PCM format
	putLE16(buf[22:24], 1)  // channels
	putLE32(buf[24:28], uint32(sampleRate))
	putLE32(buf[28:32], uint32(byteRate))
	putLE16(buf[32:34], uint16(blockAlign))
	putLE16(buf[34:36], 16) // bits per sample
	copy(buf[36:40], []byte{'d', 'a', 't', 'a'})
	putLE32(buf[40:44], uint32(dataSize))
	amp := 0.25
	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(sampleRate)
		s := math.Sin(2 * math.Pi * freq * t)
		v := int16(s * 32767.0 * amp)
		off := 44 + i*2
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
	}
	return buf
}

func putLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
