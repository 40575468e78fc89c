package analytics

import (
	"testing"

	"employeehub/internal/domain/directory"
)

func TestSalaryRanking(t *testing.T) {
	records := []directory.Record{
		{FirstName: "A", Salary: 100000},
		{FirstName: "B", Salary: 50000},
		{FirstName: "C"}, // missing salary counts as 0
		{FirstName: "D", Salary: 30000},
	}

	view := SalaryRanking(records)
	if len(view.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(view.Rows))
	}
	if view.Stats.Max != 100000 {
		t.Fatalf("max = %v", view.Stats.Max)
	}
	if view.Stats.Total != 180000 {
		t.Fatalf("total = %v", view.Stats.Total)
	}
	if view.Stats.Mean != 45000 {
		t.Fatalf("mean = %v", view.Stats.Mean)
	}
	if view.Stats.TotalDisplay != "$180,000" {
		t.Fatalf("total display = %q", view.Stats.TotalDisplay)
	}
}

func TestSalaryRankingUsesFirstTenInSetOrder(t *testing.T) {
	var records []directory.Record
	for i := 0; i < 15; i++ {
		records = append(records, directory.Record{FirstName: string(rune('a' + i)), Salary: float64(1000 * (i + 1))})
	}

	view := SalaryRanking(records)
	if len(view.Rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(view.Rows))
	}
	// Set order preserved, not sorted: the highest-paid record (index 14)
	// is outside the window entirely.
	if view.Rows[0].FirstName != "a" || view.Stats.Max != 10000 {
		t.Fatalf("window wrong: first=%q max=%v", view.Rows[0].FirstName, view.Stats.Max)
	}
}

func TestSalaryRankingEmptySet(t *testing.T) {
	view := SalaryRanking(nil)
	if len(view.Rows) != 0 || view.Stats.Mean != 0 {
		t.Fatalf("empty set mishandled: %+v", view)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 0, want: "$0"},
		{amount: 999, want: "$999"},
		{amount: 45000, want: "$45,000"},
		{amount: 1234567.8, want: "$1,234,568"},
	}
	for _, tc := range tests {
		if got := FormatMoney(tc.amount); got != tc.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
