package game

// Mood is the cosmetic mood of the on-screen mascot.
type Mood int

const (
	MoodIdle Mood = iota
	MoodSuccess
	MoodFail
	MoodStreak
	MoodStruggling
	MoodComeback
)

func (m Mood) String() string {
	switch m {
	case MoodSuccess:
		return "success"
	case MoodFail:
		return "fail"
	case MoodStreak:
		return "streak"
	case MoodStruggling:
		return "struggling"
	case MoodComeback:
		return "comeback"
	default:
		return "idle"
	}
}

// Flash is the transient feedback for the answer just given.
type Flash int

const (
	FlashNone Flash = iota
	FlashCorrect
	FlashWrong
)

func (f Flash) String() string {
	switch f {
	case FlashCorrect:
		return "correct"
	case FlashWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Direction is a swipe direction. Left, Down and Right pick options 0, 1
// and 2; Up skips.
type Direction int

const (
	Left Direction = iota
	Down
	Right
	Up
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// OptionIndex returns the option a direction selects, or -1 for Up.
func (d Direction) OptionIndex() int {
	switch d {
	case Left:
		return 0
	case Down:
		return 1
	case Right:
		return 2
	default:
		return -1
	}
}

// SessionState is the engine's observable state.
type SessionState struct {
	Score         int
	Streak        int
	BestStreak    int
	TotalCorrect  int
	TotalAnswered int

	// AnswerHistory holds the most recent outcomes, oldest first.
	AnswerHistory []bool

	ChalkState Mood
	Flash      Flash

	// Frozen locks input while feedback is shown.
	Frozen bool

	// Milestone is the badge text for the answer just given, if any.
	Milestone string
	// SpeedBonus is set when the answer just given earned the fast bonus.
	SpeedBonus bool

	WrongStreak int

	// ShieldBroken is set for one feedback cycle after a shield save.
	ShieldBroken bool
}

// Accuracy returns TotalCorrect/TotalAnswered, or 0 before any answer.
func (s *SessionState) Accuracy() float64 {
	if s.TotalAnswered == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAnswered)
}

func (s *SessionState) pushHistory(correct bool, limit int) {
	s.AnswerHistory = append(s.AnswerHistory, correct)
	if len(s.AnswerHistory) > limit {
		s.AnswerHistory = s.AnswerHistory[len(s.AnswerHistory)-limit:]
	}
}

// clearTransient resets the per-answer feedback. Mood persists.
func (s *SessionState) clearTransient() {
	s.Flash = FlashNone
	s.Milestone = ""
	s.SpeedBonus = false
	s.ShieldBroken = false
}

func (s SessionState) clone() SessionState {
	s.AnswerHistory = append([]bool(nil), s.AnswerHistory...)
	return s
}
