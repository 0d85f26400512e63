package model

type VolcanoSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	Subregion string `json:"subregion"`
}

type Population struct {
	Population5km   int64 `json:"population_5km"`
	Population10km  int64 `json:"population_10km"`
	Population30km  int64 `json:"population_30km"`
	Population100km int64 `json:"population_100km"`
}

type Volcano struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	Region       string   `json:"region"`
	Subregion    string   `json:"subregion"`
	LastEruption *string  `json:"last_eruption"`
	Summit       *int64   `json:"summit"`
	Elevation    *int64   `json:"elevation"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	*Population
}

// PopulationBand names a populatedWithin filter value.
type PopulationBand string

const (
	Band5km   PopulationBand = "5km"
	Band10km  PopulationBand = "10km"
	Band30km  PopulationBand = "30km"
	Band100km PopulationBand = "100km"
)

func (b PopulationBand) Column() (string, bool) {
	switch b {
	case Band5km:
		return "population_5km", true
	case Band10km:
		return "population_10km", true
	case Band30km:
		return "population_30km", true
	case Band100km:
		return "population_100km", true
	}
	return "", false
}
