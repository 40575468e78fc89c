package directory

import (
	"encoding/json"
	"testing"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "currency formatted", input: "$45,000", want: 45000},
		{name: "not a number", input: "N/A", want: 0},
		{name: "plain digits", input: "60000", want: 60000},
		{name: "decimal", input: "1,234.56", want: 1234.56},
		{name: "empty", input: "", want: 0},
		{name: "stripped to garbage", input: "1.2.3", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseSalary(tc.input); got != tc.want {
				t.Fatalf("ParseSalary(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDeriveDepartment(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Senior Accountant", want: "Finance"},
		{title: "Lead Engineer", want: "Engineering"},
		{title: "Software Developer", want: "IT"},
		{title: "Art Director", want: "Management"},
		{title: "Customer Support", want: "Operations"},
		{title: "Sales Representative", want: "Sales"},
		{title: "Barista", want: "Operations"},
		// Engineer is checked before Sales, so this is not Sales.
		{title: "Sales Engineer", want: "Engineering"},
	}

	for _, tc := range tests {
		t.Run(tc.title, func(t *testing.T) {
			if got := DeriveDepartment(tc.title); got != tc.want {
				t.Fatalf("DeriveDepartment(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestFromRows(t *testing.T) {
	rows := [][]any{
		{"Ada Lovelace King", "Lead Engineer", "London", "E-90210", "1990/12/10", "$320,800"},
		{"", "", "", "", "", ""},
		{"Cher", "Sales Engineer", "Austin", float64(42), nil, float64(61000)},
	}

	records := FromRows(rows)
	if len(records) != len(rows) {
		t.Fatalf("expected %d records, got %d", len(rows), len(records))
	}

	first := records[0]
	if first.FirstName != "Ada" || first.LastName != "Lovelace King" {
		t.Fatalf("unexpected name split: %q %q", first.FirstName, first.LastName)
	}
	if first.Email != "ada.lovelaceking@company.com" {
		t.Fatalf("unexpected email: %q", first.Email)
	}
	if first.PhoneNumber != "+1-555-0210" {
		t.Fatalf("unexpected phone: %q", first.PhoneNumber)
	}
	if first.Department != "Engineering" || first.Salary != 320800 {
		t.Fatalf("unexpected department/salary: %q %v", first.Department, first.Salary)
	}
	if first.Gender != "Male" || first.EmploymentStatus != "Active" {
		t.Fatalf("unexpected gender/status: %q %q", first.Gender, first.EmploymentStatus)
	}

	second := records[1]
	if second.FirstName != "Employee" || second.LastName != "2" {
		t.Fatalf("unexpected defaults for empty row: %q %q", second.FirstName, second.LastName)
	}
	if second.ID != "2" || second.City != "Unknown" || second.JobTitle != "Employee" {
		t.Fatalf("unexpected defaults: id=%q city=%q title=%q", second.ID, second.City, second.JobTitle)
	}
	if second.DateOfBirth != "1990/01/01" || second.Gender != "Female" {
		t.Fatalf("unexpected defaults: dob=%q gender=%q", second.DateOfBirth, second.Gender)
	}
	if second.PhoneNumber != "+1-555-0002" {
		t.Fatalf("unexpected zero-padded phone: %q", second.PhoneNumber)
	}

	third := records[2]
	if third.LastName != "3" {
		t.Fatalf("single-token name should default last name to ordinal, got %q", third.LastName)
	}
	if third.ID != "42" || third.Salary != 61000 {
		t.Fatalf("numeric cells mishandled: id=%q salary=%v", third.ID, third.Salary)
	}
	if third.Department != "Engineering" {
		t.Fatalf("keyword order violated: got %q", third.Department)
	}
}

func TestFromObjectsFillsEmptyIDs(t *testing.T) {
	records := FromObjects([]Record{
		{ID: "kept", FirstName: "A"},
		{FirstName: "B"},
	})
	if records[0].ID != "kept" {
		t.Fatalf("existing id must pass through, got %q", records[0].ID)
	}
	if records[1].ID == "" {
		t.Fatal("empty id must be filled")
	}
}

func TestRecordUnmarshalLooseTypes(t *testing.T) {
	var rec Record
	payload := `{"id": 7, "first_name": "Ann", "salary": "$12,500", "gender": "Female"}`
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.ID != "7" {
		t.Fatalf("numeric id should stringify, got %q", rec.ID)
	}
	if rec.Salary != 12500 {
		t.Fatalf("string salary should coerce, got %v", rec.Salary)
	}

	if err := json.Unmarshal([]byte(`{"id":"x","salary":90000}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Salary != 90000 {
		t.Fatalf("numeric salary mishandled: %v", rec.Salary)
	}
}
