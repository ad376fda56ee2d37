package weather

// RiskLevel is the qualitative severity derived from the hazard count.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Hazard thresholds. Each is exceeded only strictly.
const (
	HeatThresholdC       = 35.0
	WindThresholdMS      = 12.0
	HumidityThresholdPct = 80.0
)

const (
	HazardHeat     = "High temperature — heat stress risk."
	HazardWind     = "Strong winds — caution required."
	HazardHumidity = "High humidity."
)

// Risk is the outcome of assessing current conditions.
type Risk struct {
	Level   RiskLevel `json:"level"`
	Hazards []string  `json:"hazards"`
}

// AssessRisk evaluates the current snapshot only. Hazards are listed in
// evaluation order: temperature, wind, humidity. Absent readings never trigger.
func AssessRisk(c Current) Risk {
	hazards := []string{}
	if c.Temperature != nil && *c.Temperature > HeatThresholdC {
		hazards = append(hazards, HazardHeat)
	}
	if c.WindSpeed != nil && *c.WindSpeed > WindThresholdMS {
		hazards = append(hazards, HazardWind)
	}
	if c.Humidity != nil && *c.Humidity > HumidityThresholdPct {
		hazards = append(hazards, HazardHumidity)
	}

	level := RiskLow
	switch {
	case len(hazards) >= 2:
		level = RiskHigh
	case len(hazards) == 1:
		level = RiskMedium
	}

	return Risk{Level: level, Hazards: hazards}
}
