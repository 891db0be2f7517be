package letters

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDesign_KnownID(t *testing.T) {
	d := LookupDesign("interview-call")
	assert.Equal(t, "interview-call", d.ID)
	assert.Equal(t, "interview", d.Category)
}

func TestLookupDesign_UnknownIDFallsBack(t *testing.T) {
	d := LookupDesign("no-such-design")
	assert.Equal(t, DefaultDesignID, d.ID)
}

func TestLookupDesign_EmptyIDFallsBack(t *testing.T) {
	d := LookupDesign("")
	assert.Equal(t, DefaultDesignID, d.ID)
}

func TestDesignByCategory(t *testing.T) {
	tests := []struct {
		letterType string
		wantID     string
	}{
		{"Offer Letter", "offer-classic"},
		{"Interview Call", "interview-call"},
		{"Next Round Discussion", "next-round"},
		{"Appointment", "appointment-standard"},
		{"Rejection", "rejection-standard"},
		{"Relieving Letter", "relieving-standard"},
		{"Something Unknown", DefaultDesignID},
		{"", DefaultDesignID},
	}

	for _, tt := range tests {
		t.Run(tt.letterType, func(t *testing.T) {
			assert.Equal(t, tt.wantID, DesignByCategory(tt.letterType).ID)
		})
	}
}

func TestDesigns_SortedAndComplete(t *testing.T) {
	designs := Designs()
	require.Len(t, designs, 7)

	ids := make([]string, len(designs))
	for i, d := range designs {
		ids[i] = d.ID
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestDesigns_EveryDesignCompiles(t *testing.T) {
	branding := composerBranding()

	for _, d := range Designs() {
		t.Run(d.ID, func(t *testing.T) {
			vars := map[string]any{
				"candidate_name": "Priya",
				"company_name":   branding.CompanyName,
				"designation":    "Engineer",
				"interview_mode": "online",
			}
			out, err := RenderBody(d.Markup, vars)
			require.NoError(t, err)
			assert.NotContains(t, out, "render-error")

			subject, err := RenderBody(d.Subject, vars)
			require.NoError(t, err)
			assert.NotEmpty(t, subject)
		})
	}
}
