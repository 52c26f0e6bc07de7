package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func statements(levels ...RiskLevel) []FlaggedStatement {
	out := make([]FlaggedStatement, 0, len(levels))
	for _, lv := range levels {
		out = append(out, FlaggedStatement{Statement: "claim", RiskLevel: lv})
	}
	return out
}

func repeat(lv RiskLevel, n int) []RiskLevel {
	out := make([]RiskLevel, n)
	for i := range out {
		out[i] = lv
	}
	return out
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name  string
		input []FlaggedStatement
		want  int
	}{
		{"empty is exactly zero", nil, 0},
		{"one minor", statements(RiskMinor), 15},
		{"two major one minor", statements(RiskMajor, RiskMajor, RiskMinor), 45},
		{"five major", statements(repeat(RiskMajor, 5)...), 85},
		{"ten major capped at 100", statements(repeat(RiskMajor, 10)...), 100},
		{"unknown levels ignored for counting", statements(RiskMajor, "critical", ""), 25},
		{"only unknown levels still pay the base", statements("weird"), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeScore(tt.input))
		})
	}
}

func TestComputeScoreOrderIndependent(t *testing.T) {
	a := statements(RiskMajor, RiskMinor, RiskMajor, RiskMinor)
	b := statements(RiskMinor, RiskMinor, RiskMajor, RiskMajor)
	assert.Equal(t, ComputeScore(a), ComputeScore(b))
}

func TestComputeScoreMonotone(t *testing.T) {
	base := statements(RiskMajor, RiskMinor)
	score := ComputeScore(base)
	assert.GreaterOrEqual(t, ComputeScore(append(statements(RiskMajor, RiskMinor), FlaggedStatement{RiskLevel: RiskMajor})), score)
	assert.GreaterOrEqual(t, ComputeScore(append(statements(RiskMajor, RiskMinor), FlaggedStatement{RiskLevel: RiskMinor})), score)
}

func TestComputeScoreIdempotent(t *testing.T) {
	in := statements(RiskMajor, RiskMinor, RiskMinor)
	assert.Equal(t, ComputeScore(in), ComputeScore(in))
}

func TestComputeScoreRange(t *testing.T) {
	for n := 0; n <= 20; n++ {
		score := ComputeScore(statements(repeat(RiskMajor, n)...))
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestClassifyThreshold(t *testing.T) {
	assert.Equal(t, ClassificationMinor, Classify(0))
	assert.Equal(t, ClassificationMinor, Classify(45))
	assert.Equal(t, ClassificationMinor, Classify(55)) // boundary stays Minor
	assert.Equal(t, ClassificationMajor, Classify(56))
	assert.Equal(t, ClassificationMajor, Classify(100))
}

func TestReconciledOverridesStoredLabel(t *testing.T) {
	rec := Record{ReportID: "r1", ConfidenceScore: 60, Classification: ClassificationMinor}
	assert.Equal(t, ClassificationMajor, rec.Reconciled().Classification)

	rec = Record{ReportID: "r2", ConfidenceScore: 40, Classification: ClassificationMajor}
	assert.Equal(t, ClassificationMinor, rec.Reconciled().Classification)
}
