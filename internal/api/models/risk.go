package models

// AddressRequest is the body of both summary endpoints.
type AddressRequest struct {
	Address string `json:"address"`
}

// FireRiskSummary is the response of POST /fire-risk-summary.
type FireRiskSummary struct {
	BurnProbability       float64 `json:"harprobability"`
	HousingUnitRisk       float64 `json:"normhurisk"`
	SuppressionDifficulty float64 `json:"normsdi"`
	FireDensity           float64 `json:"normfiredensity"`
	WeightedRisk          float64 `json:"generalweightedrisk"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`

	Raw FireRawIndicators `json:"raw"`
}

// FireRawIndicators are the wildfire inputs as reported upstream.
type FireRawIndicators struct {
	BurnProbability       *float64 `json:"burnProbability"`
	HousingUnitRisk       *float64 `json:"housingUnitRisk"`
	SuppressionDifficulty *float64 `json:"suppressionDifficulty"`
	FireCount             int      `json:"fireCount"`
}

// RiskSummary is the response of POST /risk-summary.
type RiskSummary struct {
	WildfireRisk    string   `json:"wildfireRisk"`
	FloodRisk       string   `json:"floodRisk"`
	CrimeRate       string   `json:"crimeRate"`
	AirQualityIndex *float64 `json:"airQualityIndex"`
	EarthquakeRisk  float64  `json:"earthquakeRisk"`
	LandslideRisk   *float64 `json:"landslideRisk,omitempty"`
	Recommendations []string `json:"recommendations"`

	Latitude           float64           `json:"latitude"`
	Longitude          float64           `json:"longitude"`
	Address            string            `json:"address,omitempty"`
	AirQualityCategory string            `json:"airQualityCategory"`
	RiverDischarge     *float64          `json:"riverDischarge"`
	Earthquake         EarthquakeDetails `json:"earthquake"`
}

// EarthquakeDetails breaks the earthquake composite down into its inputs.
type EarthquakeDetails struct {
	Vs30            float64   `json:"vs30"`
	SiteClass       string    `json:"siteClass"`
	BuildingTag     string    `json:"buildingTag,omitempty"`
	RiskCategory    string    `json:"riskCategory"`
	FaultDistanceKm *float64  `json:"faultDistanceKm"`
	FaultProximity  float64   `json:"faultProximity"`
	PGA             []float64 `json:"pga"`
	GroundMotion    float64   `json:"groundMotion"`
}

// Placeholder values for hazards that are not scored yet.
const (
	MockWildfireRisk = "Mock"
	MockCrimeRate    = "Mock"
)
