package analytics

import (
	"fmt"
	"math"
	"strconv"

	"employeehub/internal/domain/directory"
)

// The chart ranks the first N records in set order, not a sorted top-N.
const chartSize = 10

type ChartRow struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Salary    float64 `json:"salary"`
}

type SalaryStats struct {
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Total float64 `json:"total"`

	MaxDisplay   string `json:"maxDisplay"`
	MeanDisplay  string `json:"meanDisplay"`
	TotalDisplay string `json:"totalDisplay"`
}

type SalaryView struct {
	Rows  []ChartRow  `json:"rows"`
	Stats SalaryStats `json:"stats"`
}

// SalaryRanking derives the chart rows and headline stats from the first ten
// records of the full set. Missing or invalid salaries contribute 0.
func SalaryRanking(records []directory.Record) SalaryView {
	n := len(records)
	if n > chartSize {
		n = chartSize
	}

	rows := make([]ChartRow, 0, n)
	var max, total float64
	for _, rec := range records[:n] {
		salary := rec.Salary
		if salary < 0 || math.IsNaN(salary) {
			salary = 0
		}
		rows = append(rows, ChartRow{FirstName: rec.FirstName, LastName: rec.LastName, Salary: salary})
		if salary > max {
			max = salary
		}
		total += salary
	}

	mean := float64(0)
	if n > 0 {
		mean = total / float64(n)
	}

	return SalaryView{
		Rows: rows,
		Stats: SalaryStats{
			Max:          max,
			Mean:         mean,
			Total:        total,
			MaxDisplay:   FormatMoney(max),
			MeanDisplay:  FormatMoney(mean),
			TotalDisplay: FormatMoney(total),
		},
	}
}

// FormatMoney renders a dollar amount rounded to whole units with thousands
// separators, e.g. 1234567.8 -> "$1,234,568".
func FormatMoney(amount float64) string {
	rounded := int64(math.Round(amount))
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}
	digits := strconv.FormatInt(rounded, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if negative {
		return fmt.Sprintf("$-%s", out)
	}
	return "$" + string(out)
}
