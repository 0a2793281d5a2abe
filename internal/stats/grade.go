package stats

// Grade maps an accuracy percentage to a letter grade. Total over all real
// inputs: every value below 60 (including negatives) is a D.
func Grade(accuracy float64) string {
	switch {
	case accuracy >= 90:
		return "A+"
	case accuracy >= 80:
		return "A"
	case accuracy >= 70:
		return "B"
	case accuracy >= 60:
		return "C"
	default:
		return "D"
	}
}
