package analytics

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"employeehub/internal/domain/directory"
)

// DirectoryReport renders a one-page PDF summary of the current dataset:
// headcount, salary headline stats and the largest cities.
func DirectoryReport(records []directory.Record) ([]byte, error) {
	salary := SalaryRanking(records)
	cities := ClusterCities(records)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Directory Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d", len(records)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Cities: %d (%d mapped, %d unmapped)", cities.Cities, len(cities.Mapped), len(cities.Unmapped)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Compensation (first 10 records)")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Highest salary: %s", salary.Stats.MaxDisplay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average salary: %s", salary.Stats.MeanDisplay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total payroll: %s", salary.Stats.TotalDisplay))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Largest cities")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	listed := 0
	for _, group := range append(cities.Mapped, cities.Unmapped...) {
		if listed == 5 {
			break
		}
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d", group.City, group.Count))
		pdf.Ln(6)
		listed++
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
