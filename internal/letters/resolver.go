package letters

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/hrm-letters/internal/db"
	"github.com/jonathan/hrm-letters/internal/types"
)

// RoleFallback is substituted when the request carries no role/designation.
const RoleFallback = "N/A"

// displayDateLayout is the human-readable date format used inside letters.
const displayDateLayout = "January 2, 2006"

// contactJoinSeparator joins grouped contact lines for compact footers.
const contactJoinSeparator = " | "

// BuildContext merges request fields with branding data into one flat
// key-value context for template rendering. Missing optional fields resolve to
// empty strings or documented defaults; BuildContext never fails.
func BuildContext(req *types.GenerateRequest, branding *db.BrandingProfile) map[string]any {
	join := types.ParseDate(req.JoiningDate)
	last := types.ParseDate(req.LastWorkingDay)

	groups := SplitContactLines(branding.ContactLines)
	phones, emails, addresses := groups.Joined(contactJoinSeparator)

	mode := normalizeMode(req.InterviewMode)

	context := map[string]any{
		"candidate_name": req.Name,
		"email":          req.Email,
		"designation":    fallback(req.Role, RoleFallback),
		"salary":         req.Salary,

		"joining_date":     formatDate(join),
		"last_working_day": formatDate(last),
		"duration":         tenureOrEmpty(join, last),
		"today":            formatDate(time.Now()),

		"interview_date":     req.InterviewDate,
		"interview_time":     req.InterviewTime,
		"interview_mode":     mode,
		"interview_location": req.InterviewLocation,
		"interview_link":     req.InterviewLink,
		"isOnline":           mode == "online",
		"isOffline":          mode == "offline",

		"hr_name":      req.HRName,
		"letter_title": ClassifyTitle(req.LetterType),

		"company_name":    branding.CompanyName,
		"company_address": branding.CompanyAddress,
		"logo_url":        branding.LogoURL,
		"signature_url":   branding.SignatureURL,
		"letterhead_url":  branding.LetterheadURL,

		"contact_phones":    phones,
		"contact_emails":    emails,
		"contact_addresses": addresses,
	}

	return EscapeContext(context)
}

// formatDate renders a date for display; the zero time becomes an empty
// string, never an error value.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

// tenureOrEmpty computes the tenure string when both dates are usable.
func tenureOrEmpty(join, last time.Time) string {
	if join.IsZero() || last.IsZero() || last.Before(join) {
		return ""
	}
	return TenureString(join, last)
}

// TenureString renders the span between joining date and last working day as
// whole years and months. When the end day-of-month precedes the start
// day-of-month, one month is borrowed so partial months never round up. A zero
// span renders as "Less than a month".
func TenureString(join, last time.Time) string {
	years := last.Year() - join.Year()
	months := int(last.Month()) - int(join.Month())
	if last.Day() < join.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	if years <= 0 && months <= 0 {
		return "Less than a month"
	}

	var parts []string
	if years > 0 {
		parts = append(parts, pluralize(years, "Year"))
	}
	if months > 0 {
		parts = append(parts, pluralize(months, "Month"))
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// normalizeMode lowercases the interview mode so the convenience flags and
// template comparisons behave the same for "Online" and "online".
func normalizeMode(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}
