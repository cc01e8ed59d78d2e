package session

import "time"

// Summary describes a finished session.
type Summary struct {
	SessionID string
	Category  string
	HardMode  bool

	Score      int
	BestStreak int
	Answered   int
	Correct    int
	Accuracy   float64
	Duration   time.Duration

	StartLevel int
	EndLevel   int

	// SetCompleted is set when a finite set was played through.
	SetCompleted bool
	// ShieldAwarded is set when finishing today's daily set earned a shield.
	ShieldAwarded bool
	// Shields is the inventory after the session.
	Shields int

	NewHighScore  bool
	NewBestStreak bool
}

// LevelDelta returns how far the level moved during the session.
func (s Summary) LevelDelta() int {
	return s.EndLevel - s.StartLevel
}
