package domain

// ValidationResult is produced fresh by each validation gate call and never
// persisted.
type ValidationResult struct {
	Passed   bool
	Errors   []string
	Warnings []string
	// Score grades the outcome on a 0-100 scale, clamped.
	Score   int
	Details map[string]string
}

// ClampScore bounds a raw score to the [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
