package letters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hrm-letters/internal/db"
	"github.com/jonathan/hrm-letters/internal/types"
)

func testBranding() *db.BrandingProfile {
	return &db.BrandingProfile{
		CompanyName:    "Vertex Logistics",
		CompanyAddress: "42 Industrial Estate, Pune",
		ContactLines:   "+91 98765 43210\nhr@vertex.example\nPune, India",
	}
}

func TestBuildContext_CoreFields(t *testing.T) {
	req := &types.GenerateRequest{
		Name:        "Priya Sharma",
		Email:       "priya@example.com",
		Role:        "Backend Engineer",
		Salary:      "18 LPA",
		JoiningDate: "2024-03-01",
		LetterType:  "Offer Letter",
	}

	vars := BuildContext(req, testBranding())

	assert.Equal(t, "Priya Sharma", vars["candidate_name"])
	assert.Equal(t, "Backend Engineer", vars["designation"])
	assert.Equal(t, "18 LPA", vars["salary"])
	assert.Equal(t, "March 1, 2024", vars["joining_date"])
	assert.Equal(t, "OFFER LETTER", vars["letter_title"])
	assert.Equal(t, "Vertex Logistics", vars["company_name"])
	assert.Equal(t, "+91 98765 43210", vars["contact_phones"])
	assert.Equal(t, "hr@vertex.example", vars["contact_emails"])
	assert.Equal(t, "Pune, India", vars["contact_addresses"])
	assert.NotEmpty(t, vars["today"])
}

func TestBuildContext_RoleFallback(t *testing.T) {
	vars := BuildContext(&types.GenerateRequest{Name: "A"}, testBranding())
	assert.Equal(t, RoleFallback, vars["designation"])
}

func TestBuildContext_MalformedDateRendersEmpty(t *testing.T) {
	req := &types.GenerateRequest{Name: "A", JoiningDate: "01-03-2024"}
	vars := BuildContext(req, testBranding())

	assert.Equal(t, "", vars["joining_date"])
	assert.Equal(t, "", vars["duration"])
}

func TestBuildContext_InterviewModeFlags(t *testing.T) {
	req := &types.GenerateRequest{Name: "A", InterviewMode: " Online "}
	vars := BuildContext(req, testBranding())

	assert.Equal(t, "online", vars["interview_mode"])
	assert.Equal(t, true, vars["isOnline"])
	assert.Equal(t, false, vars["isOffline"])
}

func TestBuildContext_EscapesRequestValues(t *testing.T) {
	req := &types.GenerateRequest{Name: "<b>bold</b>"}
	vars := BuildContext(req, testBranding())

	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", vars["candidate_name"])
}

func TestTenureString(t *testing.T) {
	tests := []struct {
		name string
		join string
		last string
		want string
	}{
		{"exact years", "2020-01-15", "2023-01-15", "3 Years"},
		{"years and months", "2020-01-15", "2023-04-20", "3 Years 3 Months"},
		{"partial month borrows", "2022-01-15", "2023-01-10", "11 Months"},
		{"single year", "2022-01-15", "2023-01-15", "1 Year"},
		{"single month", "2023-01-15", "2023-02-15", "1 Month"},
		{"same day", "2023-01-15", "2023-01-15", "Less than a month"},
		{"few days", "2023-01-15", "2023-01-28", "Less than a month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			join, err := time.Parse(types.DateLayout, tt.join)
			require.NoError(t, err)
			last, err := time.Parse(types.DateLayout, tt.last)
			require.NoError(t, err)

			assert.Equal(t, tt.want, TenureString(join, last))
		})
	}
}

func TestBuildContext_DurationRequiresBothDates(t *testing.T) {
	req := &types.GenerateRequest{
		Name:           "A",
		JoiningDate:    "2020-01-15",
		LastWorkingDay: "2023-04-20",
	}
	vars := BuildContext(req, testBranding())
	assert.Equal(t, "3 Years 3 Months", vars["duration"])

	req.LastWorkingDay = ""
	vars = BuildContext(req, testBranding())
	assert.Equal(t, "", vars["duration"])
}

func TestBuildContext_LastBeforeJoinRendersEmpty(t *testing.T) {
	req := &types.GenerateRequest{
		Name:           "A",
		JoiningDate:    "2023-04-20",
		LastWorkingDay: "2020-01-15",
	}
	vars := BuildContext(req, testBranding())
	assert.Equal(t, "", vars["duration"])
}
