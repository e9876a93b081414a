package game

// Difficulty scales every speed in the simulation and, inversely, the
// scared window.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyCrazy
)

// Multiplier returns the speed factor applied to the player and ghosts.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.25
	case DifficultyCrazy:
		return 2.0
	default:
		return 1.0
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	case DifficultyCrazy:
		return "Crazy"
	default:
		return "Normal"
	}
}

// Settings is everything chosen on the menu before a run starts.
type Settings struct {
	Difficulty    Difficulty
	StartLevel    int // 1..MaxLevel
	Endless       bool
	PlayerName    string
	PlayerPalette string
}

// MaxLevel is the number of distinct levels; endless runs loop through
// them keeping the score.
const MaxLevel = 5

// DefaultSettings matches a plain keyboard-mash start: normal speed,
// level one, classic yellow.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:    DifficultyNormal,
		StartLevel:    1,
		PlayerPalette: "YELLOW_BLACK_WHITE",
	}
}
