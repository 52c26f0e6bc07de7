package analysis

// Tuning constants inherited from the original dashboard. Kept exactly;
// there is no documented derivation behind them.
const (
	baseScore   = 10
	majorWeight = 15
	minorWeight = 5
	maxScore    = 100

	// MajorThreshold: scores strictly above this classify as Major.
	MajorThreshold = 55
)

// ComputeScore maps a set of flagged statements to a 0-100 score.
// Empty input scores exactly 0. Entries with an unrecognized risk level
// increment neither counter (lenient-ignore, not an error). Pure function.
func ComputeScore(statements []FlaggedStatement) int {
	if len(statements) == 0 {
		return 0
	}

	var major, minor int
	for _, st := range statements {
		switch st.RiskLevel {
		case RiskMajor:
			major++
		case RiskMinor:
			minor++
		}
	}

	raw := baseScore + majorWeight*major + minorWeight*minor
	if raw > maxScore {
		return maxScore
	}
	return raw
}

// Classify derives the binary label from a score.
func Classify(score int) Classification {
	if score > MajorThreshold {
		return ClassificationMajor
	}
	return ClassificationMinor
}
