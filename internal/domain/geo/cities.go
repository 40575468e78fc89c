package geo

// Coordinates of a known city.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// cityTable is the bundled geocoding reference. It is fixed, read-only and
// never fetched remotely; employee cities not present here are reported as
// unmapped by the clustering view.
var cityTable = map[string]Point{
	"New York":      {Lat: 40.7128, Lng: -74.0060},
	"Los Angeles":   {Lat: 34.0522, Lng: -118.2437},
	"Chicago":       {Lat: 41.8781, Lng: -87.6298},
	"Houston":       {Lat: 29.7604, Lng: -95.3698},
	"Phoenix":       {Lat: 33.4484, Lng: -112.0740},
	"Philadelphia":  {Lat: 39.9526, Lng: -75.1652},
	"San Antonio":   {Lat: 29.4241, Lng: -98.4936},
	"San Diego":     {Lat: 32.7157, Lng: -117.1611},
	"Dallas":        {Lat: 32.7767, Lng: -96.7970},
	"San Jose":      {Lat: 37.3382, Lng: -121.8863},
	"Austin":        {Lat: 30.2672, Lng: -97.7431},
	"Jacksonville":  {Lat: 30.3322, Lng: -81.6557},
	"London":        {Lat: 51.5072, Lng: -0.1276},
	"Edinburgh":     {Lat: 55.9533, Lng: -3.1883},
	"Paris":         {Lat: 48.8566, Lng: 2.3522},
	"Berlin":        {Lat: 52.5200, Lng: 13.4050},
	"Tokyo":         {Lat: 35.6762, Lng: 139.6503},
	"San Francisco": {Lat: 37.7749, Lng: -122.4194},
	"Sydney":        {Lat: -33.8688, Lng: 151.2093},
	"Mumbai":        {Lat: 19.0760, Lng: 72.8777},
	"Toronto":       {Lat: 43.6532, Lng: -79.3832},
	"Singapore":     {Lat: 1.3521, Lng: 103.8198},
}

// Lookup is an exact, case-sensitive match against the reference table.
func Lookup(city string) (Point, bool) {
	p, ok := cityTable[city]
	return p, ok
}

func KnownCities() int {
	return len(cityTable)
}
