package directory

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Row payloads are positional:
// [fullName, jobTitle, city, employeeId, dateOfBirth, salaryText].
const (
	rowFullName = iota
	rowJobTitle
	rowCity
	rowEmployeeID
	rowDateOfBirth
	rowSalary
)

// departmentRules is an ordered first-match table. The order is contractual:
// "Sales Engineer" must classify as Engineering because Engineer is checked
// before Sales.
var departmentRules = []struct {
	keyword    string
	department string
}{
	{"Accountant", "Finance"},
	{"Engineer", "Engineering"},
	{"Developer", "IT"},
	{"Director", "Management"},
	{"Support", "Operations"},
	{"Sales", "Sales"},
}

// DeriveDepartment maps a job title onto the fixed department label set.
func DeriveDepartment(jobTitle string) string {
	for _, rule := range departmentRules {
		if strings.Contains(jobTitle, rule.keyword) {
			return rule.department
		}
	}
	return "Operations"
}

// FromRows normalizes tabular rows into Records, one output per input row,
// preserving order.
func FromRows(rows [][]any) []Record {
	records := make([]Record, 0, len(rows))
	for index, row := range rows {
		records = append(records, fromRow(index, row))
	}
	return records
}

func fromRow(index int, row []any) Record {
	ordinal := strconv.Itoa(index + 1)

	names := strings.Fields(cell(row, rowFullName))
	firstName := "Employee"
	lastName := ""
	if len(names) > 0 {
		firstName = names[0]
		lastName = strings.Join(names[1:], " ")
	}
	if lastName == "" {
		lastName = ordinal
	}

	id := cell(row, rowEmployeeID)
	if id == "" {
		id = ordinal
	}

	jobTitle := cell(row, rowJobTitle)
	if jobTitle == "" {
		jobTitle = "Employee"
	}

	city := cell(row, rowCity)
	if city == "" {
		city = "Unknown"
	}

	dateOfBirth := cell(row, rowDateOfBirth)
	if dateOfBirth == "" {
		dateOfBirth = "1990/01/01"
	}

	gender := "Male"
	if index%2 == 1 {
		gender = "Female"
	}

	return Record{
		ID:               id,
		FirstName:        firstName,
		LastName:         lastName,
		Email:            synthesizeEmail(firstName, lastName),
		PhoneNumber:      synthesizePhone(id),
		Department:       DeriveDepartment(jobTitle),
		JobTitle:         jobTitle,
		Salary:           salaryCell(row, rowSalary),
		City:             city,
		Gender:           gender,
		EmploymentStatus: "Active",
		DateOfBirth:      dateOfBirth,
	}
}

// FromObjects passes already-structured records through without coercion.
// The only touch-up is filling empty ids so the uniqueness invariant holds.
func FromObjects(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func synthesizeEmail(firstName, lastName string) string {
	local := firstName + "." + strings.ReplaceAll(lastName, " ", "")
	return strings.ToLower(local) + "@company.com"
}

func synthesizePhone(id string) string {
	suffix := id
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	for len(suffix) < 4 {
		suffix = "0" + suffix
	}
	return "+1-555-" + suffix
}

func cell(row []any, index int) string {
	if index >= len(row) {
		return ""
	}
	switch v := row[index].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func salaryCell(row []any, index int) float64 {
	if index >= len(row) {
		return 0
	}
	switch v := row[index].(type) {
	case float64:
		return v
	case string:
		return ParseSalary(v)
	default:
		return 0
	}
}
