package analytics

import (
	"math"
	"testing"

	"employeehub/internal/domain/directory"
)

func TestClusterCities(t *testing.T) {
	records := []directory.Record{
		{ID: "1", City: "Austin", Department: "Engineering"},
		{ID: "2", City: "Gotham", Department: "Sales"},
		{ID: "3", City: "Austin", Department: "Sales"},
	}

	view := ClusterCities(records)
	if view.Cities != 2 {
		t.Fatalf("expected 2 city groups, got %d", view.Cities)
	}

	if len(view.Mapped) != 1 {
		t.Fatalf("expected 1 mapped city, got %d", len(view.Mapped))
	}
	austin := view.Mapped[0]
	if austin.City != "Austin" || austin.Count != 2 {
		t.Fatalf("unexpected mapped group: %+v", austin)
	}
	// Representative department comes from the first employee encountered.
	if austin.Department != "Engineering" {
		t.Fatalf("representative department = %q", austin.Department)
	}
	if austin.Lat == 0 || austin.Lng == 0 {
		t.Fatal("mapped city must carry coordinates")
	}

	if len(view.Unmapped) != 1 || view.Unmapped[0].City != "Gotham" {
		t.Fatalf("unknown city must be reported unmapped: %+v", view.Unmapped)
	}
	if view.Unmapped[0].Radius != 0 {
		t.Fatal("unmapped cities are excluded from spatial rendering")
	}

	if view.TopCity != "Austin" {
		t.Fatalf("top city = %q", view.TopCity)
	}
}

func TestClusterCitiesOrdering(t *testing.T) {
	records := []directory.Record{
		{ID: "1", City: "Paris"},
		{ID: "2", City: "Berlin"},
		{ID: "3", City: "Tokyo"},
		{ID: "4", City: "Berlin"},
	}

	view := ClusterCities(records)
	if view.Mapped[0].City != "Berlin" {
		t.Fatalf("largest group must sort first, got %q", view.Mapped[0].City)
	}
	// Paris and Tokyo tie at 1; encounter order breaks the tie.
	if view.Mapped[1].City != "Paris" || view.Mapped[2].City != "Tokyo" {
		t.Fatalf("tie order violated: %q then %q", view.Mapped[1].City, view.Mapped[2].City)
	}
}

func TestMarkerRadiusClamp(t *testing.T) {
	if r := markerRadius(1); math.Abs(r-8.7) > 1e-9 {
		t.Fatalf("radius(1) = %v", r)
	}
	if r := markerRadius(3); math.Abs(r-12.1) > 1e-9 {
		t.Fatalf("radius(3) = %v", r)
	}
	if r := markerRadius(50); r != 15 {
		t.Fatalf("radius must clamp at 15, got %v", r)
	}
	// Monotone below the clamp.
	if markerRadius(2) <= markerRadius(1) {
		t.Fatal("radius must grow with headcount")
	}
}

func TestDirectoryReport(t *testing.T) {
	pdf, err := DirectoryReport(directory.FallbackDataset())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty pdf")
	}
	if string(pdf[:5]) != "%PDF-" {
		t.Fatalf("not a pdf header: %q", pdf[:5])
	}
}
