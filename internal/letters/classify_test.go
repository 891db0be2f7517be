package letters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTitle(t *testing.T) {
	tests := []struct {
		name       string
		letterType string
		want       string
	}{
		{"offer", "Offer Letter", "OFFER LETTER"},
		{"offer embedded", "Job Offer - Senior Engineer", "OFFER LETTER"},
		{"interview", "Interview Letter", "INTERVIEW CALL LETTER"},
		{"call", "Call for discussion", "INTERVIEW CALL LETTER"},
		{"appointment", "Appointment Letter", "APPOINTMENT LETTER"},
		{"rejection", "Rejection", "REJECTION LETTER"},
		{"next round", "Next Round Discussion", "NEXT ROUND INTERVIEW LETTER"},
		{"round only", "Round 2", "NEXT ROUND INTERVIEW LETTER"},
		{"relieving", "relieving letter", "RELIEVING LETTER"},
		{"case insensitive", "OFFER letter", "OFFER LETTER"},
		{"unmatched uppercased", "Promotion Letter", "PROMOTION LETTER"},
		{"empty", "", GenericTitle},
		{"whitespace only", "   ", GenericTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTitle(tt.letterType))
		})
	}
}

func TestClassifyTitle_RuleOrder(t *testing.T) {
	// "offer" outranks "round": an input matching both takes the first rule.
	assert.Equal(t, "OFFER LETTER", ClassifyTitle("Offer after final round"))
}
