package directory

import (
	"sort"
	"strings"
)

// PageSize is the fixed page length of the list screen.
const PageSize = 8

const (
	SortByName       = "name"
	SortBySalary     = "salary"
	SortByDepartment = "dept"

	// AllDepartments is the sentinel filter value that matches every record.
	AllDepartments = "All"
)

type Query struct {
	Search     string
	Department string
	SortKey    string
	Page       int
}

type Page struct {
	Records      []Record `json:"records"`
	TotalMatches int      `json:"totalMatches"`
	TotalPages   int      `json:"totalPages"`
	Page         int      `json:"page"`
	PageSize     int      `json:"pageSize"`
}

// Run filters, sorts and pages the full record set. Sorting is stable so
// ties keep their original relative order, and an out-of-range page index
// clamps to the nearest valid page.
func Run(records []Record, q Query) Page {
	matched := make([]Record, 0, len(records))
	needle := strings.ToLower(q.Search)
	for _, rec := range records {
		if !matchesDepartment(rec, q.Department) {
			continue
		}
		if needle != "" && !strings.Contains(searchHaystack(rec), needle) {
			continue
		}
		matched = append(matched, rec)
	}

	switch q.SortKey {
	case SortByName:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].FirstName+matched[i].LastName < matched[j].FirstName+matched[j].LastName
		})
	case SortBySalary:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Salary > matched[j].Salary
		})
	case SortByDepartment:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Department < matched[j].Department
		})
	}

	totalPages := (len(matched) + PageSize - 1) / PageSize
	page := q.Page
	if page < 0 {
		page = 0
	}
	if totalPages > 0 && page >= totalPages {
		page = totalPages - 1
	}
	if totalPages == 0 {
		page = 0
	}

	start := page * PageSize
	end := start + PageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	visible := make([]Record, end-start)
	copy(visible, matched[start:end])

	return Page{
		Records:      visible,
		TotalMatches: len(matched),
		TotalPages:   totalPages,
		Page:         page,
		PageSize:     PageSize,
	}
}

// Departments lists the filter choices: the All sentinel followed by each
// distinct department in encounter order.
func Departments(records []Record) []string {
	out := []string{AllDepartments}
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.Department == "" || seen[rec.Department] {
			continue
		}
		seen[rec.Department] = true
		out = append(out, rec.Department)
	}
	return out
}

func matchesDepartment(rec Record, department string) bool {
	return department == "" || department == AllDepartments || rec.Department == department
}

func searchHaystack(rec Record) string {
	return strings.ToLower(rec.FirstName + " " + rec.LastName + " " + rec.Email + " " + rec.City)
}
