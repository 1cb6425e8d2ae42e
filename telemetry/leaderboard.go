package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// TimeLayout is the timestamp format stored in leaderboard entries.
const TimeLayout = "2006-01-02 15:04:05"

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Time  string `json:"time"`
}

// Leaderboard keeps the best scores in descending order.
type Leaderboard struct {
	path    string
	maxSize int
	entries []ScoreEntry
}

// NewLeaderboard creates an empty leaderboard backed by path.
func NewLeaderboard(path string, maxSize int) *Leaderboard {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Leaderboard{
		path:    path,
		maxSize: maxSize,
		entries: make([]ScoreEntry, 0, maxSize),
	}
}

// LoadLeaderboard reads path. A missing or unreadable file yields an empty
// leaderboard; the problem is logged, never returned.
func LoadLeaderboard(path string, maxSize int) *Leaderboard {
	lb := NewLeaderboard(path, maxSize)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("leaderboard unreadable, starting empty", "path", path, "error", err)
		}
		return lb
	}

	var raw []ScoreEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("leaderboard corrupt, starting empty", "path", path, "error", err)
		return lb
	}
	for _, e := range raw {
		lb.insert(e)
	}
	return lb
}

// Submit records a score. Returns true if it made the board.
func (lb *Leaderboard) Submit(name string, score int, at time.Time) bool {
	return lb.insert(ScoreEntry{Name: name, Score: score, Time: at.Format(TimeLayout)})
}

// Qualifies reports whether score would make the board.
func (lb *Leaderboard) Qualifies(score int) bool {
	return len(lb.entries) < lb.maxSize || score > lb.entries[len(lb.entries)-1].Score
}

// insert adds an entry, maintaining descending order by score. Ties keep
// the earlier entry ahead. If the board is full, the lowest entry drops.
func (lb *Leaderboard) insert(e ScoreEntry) bool {
	idx := sort.Search(len(lb.entries), func(i int) bool {
		return lb.entries[i].Score < e.Score
	})
	if idx >= lb.maxSize {
		return false
	}

	lb.entries = append(lb.entries, ScoreEntry{})
	copy(lb.entries[idx+1:], lb.entries[idx:])
	lb.entries[idx] = e

	if len(lb.entries) > lb.maxSize {
		lb.entries = lb.entries[:lb.maxSize]
	}
	return true
}

// Entries returns the board, best first.
func (lb *Leaderboard) Entries() []ScoreEntry {
	return lb.entries
}

// Best returns the top score, or 0 when the board is empty.
func (lb *Leaderboard) Best() int {
	if len(lb.entries) == 0 {
		return 0
	}
	return lb.entries[0].Score
}

// Save writes the board atomically: a temp file in the same directory is
// renamed over the target.
func (lb *Leaderboard) Save() error {
	if lb.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(lb.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling leaderboard: %w", err)
	}

	dir := filepath.Dir(lb.path)
	tmp, err := os.CreateTemp(dir, ".leaderboard-*.json")
	if err != nil {
		return fmt.Errorf("creating leaderboard temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing leaderboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing leaderboard temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), lb.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing leaderboard: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (lb *Leaderboard) Path() string {
	return lb.path
}
