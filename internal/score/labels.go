package score

// Label maps a 0-100 trust score to its display band.
func Label(score int) string {
	switch {
	case score >= 80:
		return "trusted"
	case score >= 60:
		return "reliable"
	case score >= 40:
		return "questionable"
	default:
		return "unreliable"
	}
}
