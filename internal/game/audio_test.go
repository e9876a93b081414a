package game

import "testing"

func TestChaseCueTiers(t *testing.T) {
	cases := []struct {
		fraction float64
		want     string
	}{
		{1.0, "ghost_chase"},
		{0.76, "ghost_chase"},
		{0.75, "ghost_chase2"},
		{0.51, "ghost_chase2"},
		{0.50, "ghost_chase3"},
		{0.26, "ghost_chase3"},
		{0.25, "ghost_chase4"},
		{0.11, "ghost_chase4"},
		{0.10, "ghost_chase5"},
		{0.0, "ghost_chase5"},
	}
	for _, c := range cases {
		if got := chaseCueFor(c.fraction); got != c.want {
			t.Errorf("chaseCueFor(%v) = %q, want %q", c.fraction, got, c.want)
		}
	}
}

func TestDisabledAudioIsInert(t *testing.T) {
	t.Setenv("PACMAN_DISABLE_AUDIO", "1")
	am := NewAudioManager(t.TempDir())

	// Everything must be a safe no-op without an audio context.
	am.Play("start")
	am.Play("no_such_cue")
	am.Stop("ghost_blue")
	am.StopAll()
	if am.IsPlaying("start") {
		t.Fatal("disabled audio must never report a playing cue")
	}
}

func TestEveryCueHasFallbackData(t *testing.T) {
	t.Setenv("PACMAN_DISABLE_AUDIO", "1")
	am := NewAudioManager(t.TempDir())
	for _, spec := range cueSpecs {
		c, ok := am.cues[spec.name]
		if !ok || len(c.raw) == 0 {
			t.Fatalf("cue %q has no data", spec.name)
		}
		if c.loop != spec.loop {
			t.Fatalf("cue %q loop flag = %v, want %v", spec.name, c.loop, spec.loop)
		}
	}
}

func TestSynthBeepWAVHeader(t *testing.T) {
	b := synthBeepWAV(44100, 100, 440)
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Fatal("synthesized beep is not a RIFF/WAVE container")
	}
	wantSamples := 4410
	if len(b) != 44+wantSamples*2 {
		t.Fatalf("synth length = %d, want %d", len(b), 44+wantSamples*2)
	}
}
