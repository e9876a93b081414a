package game

import "testing"

func TestDifficultyMultipliers(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       float64
	}{
		{DifficultyEasy, 0.75},
		{DifficultyNormal, 1.0},
		{DifficultyHard, 1.25},
		{DifficultyCrazy, 2.0},
	}
	for _, tc := range tests {
		if got := tc.difficulty.Multiplier(); got != tc.want {
			t.Errorf("%s multiplier = %v, want %v", tc.difficulty, got, tc.want)
		}
	}
}
