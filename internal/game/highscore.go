package game

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	configDirName   = "pacman"
	leaderboardFile = "highscore.json"
)

// ScoreRecord is one leaderboard entry.
type ScoreRecord struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// configBaseDir determines where the leaderboard lives. PACMAN_CONFIG_DIR
// overrides the platform config directory, which keeps tests hermetic.
func configBaseDir() (string, error) {
	if env := os.Getenv("PACMAN_CONFIG_DIR"); env != "" {
		if err := os.MkdirAll(env, 0o755); err != nil {
			return "", err
		}
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadLeaderboard returns every known score record, unsorted. A missing or
// unreadable file is an empty leaderboard, not an error.
func LoadLeaderboard() []ScoreRecord {
	dir, err := configBaseDir()
	if err != nil {
		logrus.Warnf("leaderboard dir: %v", err)
		return nil
	}
	data, err := os.ReadFile(filepath.Join(dir, leaderboardFile))
	if err != nil {
		return nil
	}
	var records []ScoreRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logrus.Warnf("leaderboard parse: %v", err)
		return nil
	}
	return records
}

// TopScores returns the leaderboard sorted best-first, capped at n.
func TopScores(n int) []ScoreRecord {
	records := LoadLeaderboard()
	sort.Slice(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if len(records) > n {
		records = records[:n]
	}
	return records
}

// BestScore returns the highest known record, or nil when the leaderboard
// is empty.
func BestScore() *ScoreRecord {
	top := TopScores(1)
	if len(top) == 0 {
		return nil
	}
	return &top[0]
}

// SaveScore upserts a record by case-insensitive name, keeping the better
// score, and writes the leaderboard atomically.
func SaveScore(rec ScoreRecord) error {
	if rec.Score < 0 {
		return errors.New("score must be non-negative")
	}
	dir, err := configBaseDir()
	if err != nil {
		return err
	}

	records := LoadLeaderboard()
	found := false
	for i := range records {
		if strings.EqualFold(strings.TrimSpace(records[i].Name), strings.TrimSpace(rec.Name)) {
			if rec.Score > records[i].Score {
				records[i].Score = rec.Score
			}
			found = true
			break
		}
	}
	if !found {
		records = append(records, rec)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, leaderboardFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
