package letters

import "sort"

// Design is one built-in letter design: a markup fragment with shorthand
// placeholders and a matching stylesheet fragment.
type Design struct {
	ID       string
	Name     string
	Category string
	Subject  string
	Markup   string
	Style    string
}

// DefaultDesignID is the catalog fallback for unknown design ids.
const DefaultDesignID = "offer-classic"

// baseStyle is shared by every catalog design.
const baseStyle = `
.letter-body { font-family: Georgia, "Times New Roman", serif; font-size: 13px; line-height: 1.65; color: #1f2430; }
.letter-body h2 { font-size: 17px; letter-spacing: 1px; text-transform: uppercase; }
.letter-date { text-align: right; margin-bottom: 18px; }
.letter-detail-table { border-collapse: collapse; margin: 14px 0; }
.letter-detail-table td { padding: 4px 14px 4px 0; vertical-align: top; }
.letter-detail-table td:first-child { font-weight: bold; white-space: nowrap; }
.render-error { color: #b00020; border: 1px dashed #b00020; padding: 8px; }
`

// catalog is the static design registry, keyed by design id and loaded with
// the process. Lookups never mutate it.
var catalog = map[string]Design{
	"offer-classic": {
		ID:       "offer-classic",
		Name:     "Offer Letter (Classic)",
		Category: "offer",
		Subject:  "Offer of Employment",
		Markup: `<div class="letter-body">
<p class="letter-date">{{today}}</p>
<h2>Offer Letter</h2>
<p>Dear {{candidate_name}},</p>
<p>We are pleased to offer you the position of <strong>{{designation}}</strong> at {{company_name}}.
We were impressed with your background and believe you will be a valuable addition to our team.</p>
<table class="letter-detail-table">
<tr><td>Designation</td><td>{{designation}}</td></tr>
{{#if salary}}<tr><td>Annual CTC</td><td>{{salary}}</td></tr>{{/if}}
{{#if joining_date}}<tr><td>Date of Joining</td><td>{{joining_date}}</td></tr>{{/if}}
</table>
{{#if body}}{{body}}{{/if}}
<p>Please confirm your acceptance of this offer by replying to this letter. We look forward to
welcoming you to {{company_name}}.</p>
</div>`,
		Style: baseStyle,
	},
	"offer-modern": {
		ID:       "offer-modern",
		Name:     "Offer Letter (Modern)",
		Category: "offer",
		Subject:  "Your Offer from {{company_name}}",
		Markup: `<div class="letter-body offer-modern">
<h2>Welcome Aboard</h2>
<p>Hi {{candidate_name}},</p>
<p>Congratulations! {{company_name}} would like you to join us as <strong>{{designation}}</strong>{{#if joining_date}},
starting {{joining_date}}{{/if}}.</p>
{{#if salary}}<p>Your annual compensation will be <strong>{{salary}}</strong>.</p>{{/if}}
{{#if body}}{{body}}{{/if}}
<p>We can't wait to build great things together.</p>
</div>`,
		Style: baseStyle + `
.offer-modern h2 { color: #2353a4; border-bottom: 2px solid #2353a4; padding-bottom: 6px; }
.offer-modern p { font-family: Helvetica, Arial, sans-serif; }
`,
	},
	"interview-call": {
		ID:       "interview-call",
		Name:     "Interview Call Letter",
		Category: "interview",
		Subject:  "Interview Invitation",
		Markup: `<div class="letter-body">
<p class="letter-date">{{today}}</p>
<h2>Interview Call Letter</h2>
<p>Dear {{candidate_name}},</p>
<p>Thank you for your application for the position of <strong>{{designation}}</strong>. We would
like to invite you to an interview.</p>
<table class="letter-detail-table">
<tr><td>Date</td><td>{{interview_date}}</td></tr>
<tr><td>Time</td><td>{{interview_time}}</td></tr>
{{#if isOnline}}<tr><td>Mode</td><td>Online</td></tr>
<tr><td>Meeting Link</td><td>{{interview_link}}</td></tr>{{/if}}
{{#if isOffline}}<tr><td>Mode</td><td>In person</td></tr>
<tr><td>Venue</td><td>{{interview_location}}</td></tr>{{/if}}
</table>
{{#if body}}{{body}}{{/if}}
<p>Please confirm your availability. We look forward to speaking with you.</p>
</div>`,
		Style: baseStyle,
	},
	"next-round": {
		ID:       "next-round",
		Name:     "Next Round Interview Letter",
		Category: "round",
		Subject:  "Next Round of Interviews",
		Markup: `<div class="letter-body">
<p class="letter-date">{{today}}</p>
<h2>Next Round Interview</h2>
<p>Dear {{candidate_name}},</p>
<p>Congratulations on clearing the previous round for the <strong>{{designation}}</strong>
position. You have been shortlisted for the next round.</p>
<table class="letter-detail-table">
<tr><td>Date</td><td>{{interview_date}}</td></tr>
<tr><td>Time</td><td>{{interview_time}}</td></tr>
{{#if interview_mode == "online"}}<tr><td>Meeting Link</td><td>{{interview_link}}</td></tr>{{/if}}
{{#if interview_mode == "offline"}}<tr><td>Venue</td><td>{{interview_location}}</td></tr>{{/if}}
</table>
{{#if body}}{{body}}{{/if}}
<p>Best of luck!</p>
</div>`,
		Style: baseStyle,
	},
	"appointment-standard": {
		ID:       "appointment-standard",
		Name:     "Appointment Letter",
		Category: "appointment",
		Subject:  "Letter of Appointment",
		Markup: `<div class="letter-body">
<p class="letter-date">{{today}}</p>
<h2>Appointment Letter</h2>
<p>Dear {{candidate_name}},</p>
<p>With reference to your acceptance of our offer, we are pleased to appoint you as
<strong>{{designation}}</strong> at {{company_name}}{{#if joining_date}} with effect from
{{joining_date}}{{/if}}.</p>
{{#if salary}}<p>Your annual compensation will be {{salary}}, payable as per company policy.</p>{{/if}}
{{#if body}}{{body}}{{/if}}
<p>Your appointment is subject to the terms and conditions of employment shared with you.
Please sign and return a copy of this letter as a token of acceptance.</p>
</div>`,
		Style: baseStyle,
	},
	"rejection-standard": {
		ID:       "rejection-standard",
		Name:     "Rejection Letter",
		Category: "rejection",
		Subject:  "Update on Your Application",
		Markup: `<div class="letter-body">
<p class="letter-date">{{today}}</p>
<p>Dear {{candidate_name}},</p>
<p>Thank you for taking the time to apply for the <strong>{{designation}}</strong> position at
{{company_name}} and for meeting with our team.</p>
<p>After careful consideration we have decided to move forward with another candidate. This
decision reflects the strength of the applicant pool rather than any shortcoming on your part.</p>
{{#if body}}{{body}}{{/if}}
<p>We encourage you to apply for future openings that match your profile, and we wish you every
success in your search.</p>
</div>`,
		Style: baseStyle,
	},
	"relieving-standard": {
		ID:       "relieving-standard",
		Name:     "Relieving Letter",
		Category: "relieving",
		Subject:  "Relieving Letter",
		Markup: `<div class="letter-body">
<p class="letter-date">{{today}}</p>
<h2>Relieving Letter</h2>
<p>To Whomsoever It May Concern,</p>
<p>This is to certify that <strong>{{candidate_name}}</strong> was employed with
{{company_name}} as <strong>{{designation}}</strong>{{#if joining_date}} from {{joining_date}}{{/if}}{{#if last_working_day}} until {{last_working_day}}{{/if}}{{#if duration}}, a tenure of {{duration}}{{/if}}.</p>
<p>{{candidate_name}} has been relieved of all duties and responsibilities. During the period of
employment we found {{candidate_name}} to be sincere and hardworking.</p>
{{#if body}}{{body}}{{/if}}
<p>We wish {{candidate_name}} the very best in future endeavours.</p>
</div>`,
		Style: baseStyle,
	},
}

// LookupDesign returns the catalog design for an id, falling back to the
// default offer design for unknown ids.
func LookupDesign(id string) Design {
	if d, ok := catalog[id]; ok {
		return d
	}
	return catalog[DefaultDesignID]
}

// DesignByCategory returns the first catalog design matching the classified
// category of a letter type, or the default design when nothing matches.
func DesignByCategory(letterType string) Design {
	title := ClassifyTitle(letterType)
	for _, rule := range titleRules {
		if rule.title != title {
			continue
		}
		for _, d := range Designs() {
			if d.Category == rule.substrings[0] {
				return d
			}
		}
	}
	return catalog[DefaultDesignID]
}

// Designs returns all catalog designs sorted by id. The markup is included so
// clients can preview placeholders.
func Designs() []Design {
	out := make([]Design, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
