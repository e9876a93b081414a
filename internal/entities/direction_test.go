package entities

import "testing"

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		wantDX int
		wantDY int
	}{
		{name: "none", dir: DirNone, wantDX: 0, wantDY: 0},
		{name: "left", dir: DirLeft, wantDX: -1, wantDY: 0},
		{name: "right", dir: DirRight, wantDX: 1, wantDY: 0},
		{name: "up", dir: DirUp, wantDX: 0, wantDY: -1},
		{name: "down", dir: DirDown, wantDX: 0, wantDY: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dx, dy := tc.dir.Delta()
			if dx != tc.wantDX || dy != tc.wantDY {
				t.Fatalf("%v.Delta() = (%d,%d), want (%d,%d)", tc.dir, dx, dy, tc.wantDX, tc.wantDY)
			}
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirLeft:  DirRight,
		DirRight: DirLeft,
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirNone:  DirNone,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Fatalf("%v.Opposite() = %v, want %v", d, got, want)
		}
	}
}

func TestIsReverse(t *testing.T) {
	if !DirLeft.IsReverse(DirRight) || !DirUp.IsReverse(DirDown) {
		t.Fatal("opposites must be reverses")
	}
	if DirLeft.IsReverse(DirUp) || DirNone.IsReverse(DirNone) {
		t.Fatal("non-opposites must not be reverses")
	}
}
