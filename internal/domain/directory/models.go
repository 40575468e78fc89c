package directory

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is the normalized employee shape every screen works from. The wire
// names are the snake_case contract the upstream endpoint and the front end
// already speak.
type Record struct {
	ID               string  `json:"id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phone_number"`
	Department       string  `json:"department"`
	JobTitle         string  `json:"job_title"`
	Salary           float64 `json:"salary"`
	City             string  `json:"city"`
	Gender           string  `json:"gender"`
	EmploymentStatus string  `json:"employment_status"`
	DateOfBirth      string  `json:"date_of_birth"`
}

// UnmarshalJSON tolerates the loose typing of inbound payloads: ids may be
// numbers, salaries may be numbers or formatted strings such as "$45,000".
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		*alias
		ID     json.RawMessage `json:"id"`
		Salary json.RawMessage `json:"salary"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = flexString(aux.ID)
	r.Salary = flexSalary(aux.Salary)
	return nil
}

func (r Record) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func flexSalary(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseSalary(s)
	}
	return 0
}

// ParseSalary coerces a display string into a number by stripping everything
// that is not a digit, dot or minus. Anything unparsable is 0.
func ParseSalary(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}
