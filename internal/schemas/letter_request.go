package schemas

// LetterRequestSchema constrains the letter-generation payload beyond struct
// tags: date formats, known interview modes, and the mutual exclusion of
// design and template selectors.
const LetterRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "LetterGenerateRequest",
  "type": "object",
  "required": ["name"],
  "properties": {
    "employee_id": { "type": "string" },
    "name": { "type": "string", "minLength": 1 },
    "email": { "type": "string" },
    "role": { "type": "string" },
    "joining_date": { "type": "string", "pattern": "^$|^\\d{4}-\\d{2}-\\d{2}$" },
    "last_working_day": { "type": "string", "pattern": "^$|^\\d{4}-\\d{2}-\\d{2}$" },
    "salary": { "type": "string" },
    "interview_date": { "type": "string" },
    "interview_time": { "type": "string" },
    "interview_mode": { "type": "string" },
    "interview_location": { "type": "string" },
    "interview_link": { "type": "string" },
    "hr_name": { "type": "string" },
    "body_content": { "type": "string" },
    "design_id": { "type": "string" },
    "template_id": { "type": "string" },
    "letter_type": { "type": "string" },
    "decorate": { "type": "boolean" }
  },
  "not": {
    "required": ["design_id", "template_id"],
    "properties": {
      "design_id": { "minLength": 1 },
      "template_id": { "minLength": 1 }
    }
  },
  "additionalProperties": false
}`

// ValidateLetterRequest validates a raw generation payload against
// LetterRequestSchema.
func ValidateLetterRequest(jsonContent string) error {
	return ValidateJSONString(LetterRequestSchema, jsonContent)
}
