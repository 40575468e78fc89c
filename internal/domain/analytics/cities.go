package analytics

import (
	"sort"

	"employeehub/internal/domain/directory"
	"employeehub/internal/domain/geo"
)

// Marker radius scales with headcount but stays visually bounded.
const (
	markerBase    = 7.0
	markerPerHead = 1.7
	markerMax     = 15.0
)

type CityGroup struct {
	City       string             `json:"city"`
	Department string             `json:"department"`
	Count      int                `json:"count"`
	Employees  []directory.Record `json:"employees"`
	Lat        float64            `json:"lat,omitempty"`
	Lng        float64            `json:"lng,omitempty"`
	Radius     float64            `json:"radius,omitempty"`
}

type CityView struct {
	Mapped   []CityGroup `json:"mapped"`
	Unmapped []CityGroup `json:"unmapped"`
	TopCity  string      `json:"topCity"`
	Cities   int         `json:"cities"`
}

// ClusterCities groups the full set by exact city string. Each group carries
// the department of its first employee as the representative color key.
// Groups sort by descending headcount with ties keeping encounter order;
// cities absent from the geocoding table land in the unmapped list.
func ClusterCities(records []directory.Record) CityView {
	index := make(map[string]int)
	groups := make([]CityGroup, 0)
	for _, rec := range records {
		i, ok := index[rec.City]
		if !ok {
			i = len(groups)
			index[rec.City] = i
			groups = append(groups, CityGroup{City: rec.City, Department: rec.Department})
		}
		groups[i].Employees = append(groups[i].Employees, rec)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	view := CityView{Cities: len(groups)}
	if len(groups) > 0 {
		view.TopCity = groups[0].City
	}
	for _, g := range groups {
		if p, ok := geo.Lookup(g.City); ok {
			g.Lat = p.Lat
			g.Lng = p.Lng
			g.Radius = markerRadius(g.Count)
			view.Mapped = append(view.Mapped, g)
		} else {
			view.Unmapped = append(view.Unmapped, g)
		}
	}
	return view
}

func markerRadius(count int) float64 {
	radius := markerBase + float64(count)*markerPerHead
	if radius > markerMax {
		return markerMax
	}
	return radius
}
