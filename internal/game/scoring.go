package game

// StreakBonus returns the streak component of a correct answer's points.
func StreakBonus(streak int, sc Scoring) int {
	if streak <= 0 {
		return 0
	}
	if sc.StreakCap > 0 && streak > sc.StreakCap {
		streak = sc.StreakCap
	}
	return sc.StreakStep * streak
}

// FastBonus returns the speed component of a correct answer's points.
func FastBonus(fast bool, sc Scoring) int {
	if !fast {
		return 0
	}
	return sc.FastBonus
}

// PointsFor returns the points a correct answer earns at streak (the
// streak including this answer).
func PointsFor(streak int, fast bool, sc Scoring) int {
	return sc.Base + StreakBonus(streak, sc) + FastBonus(fast, sc)
}

// applyPenalty subtracts the wrong-answer penalty, flooring at zero.
func applyPenalty(score int, sc Scoring) int {
	return max(score-sc.WrongPenalty, 0)
}
