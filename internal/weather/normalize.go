package weather

import "time"

// MaxHourlySamples caps the hourly series handed to the dashboard.
const MaxHourlySamples = 48

// timeLayouts are tried in order; zone-less values are read as UTC since
// the forecast request pins timezone=UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Normalize converts a raw Open-Meteo response into the canonical payload.
// Missing sections, ragged arrays and unparsable timestamps degrade to empty
// or null values; it never fails.
func Normalize(raw ForecastResponse) CanonicalWeather {
	cw := raw.CurrentWeather
	if cw == nil {
		cw = &CurrentWeather{}
	}
	hourly := raw.Hourly
	if hourly == nil {
		hourly = &HourlySeries{}
	}
	daily := raw.Daily
	if daily == nil {
		daily = &DailySeries{}
	}

	var humidity *float64
	if len(hourly.RelativeHumidity2m) > 0 {
		humidity = hourly.RelativeHumidity2m[0]
	}

	current := Current{
		Temperature: cw.Temperature,
		FeelsLike:   cw.Temperature,
		WindSpeed:   cw.WindSpeed,
		Humidity:    humidity,
		Weather: []Condition{{
			Description: ConditionLabel(cw.WeatherCode),
			Code:        cw.WeatherCode,
		}},
	}

	n := min(len(hourly.Time), len(hourly.Temperature2m), MaxHourlySamples)
	hourlyList := make([]HourlySample, 0, n)
	for i := 0; i < n; i++ {
		hourlyList = append(hourlyList, HourlySample{
			Timestamp:   parseEpoch(hourly.Time[i]),
			Temperature: hourly.Temperature2m[i],
			Weather:     []Condition{{Description: ConditionLabel(intAt(hourly.WeatherCode, i))}},
		})
	}

	n = min(len(daily.Time), len(daily.Temperature2mMax), len(daily.Temperature2mMin), len(daily.WeatherCode))
	dailyList := make([]DailySample, 0, n)
	for i := 0; i < n; i++ {
		dailyList = append(dailyList, DailySample{
			Timestamp:       parseEpoch(daily.Time[i]),
			TemperatureMax:  daily.Temperature2mMax[i],
			TemperatureMin:  daily.Temperature2mMin[i],
			Code:            daily.WeatherCode[i],
			RainProbability: floatAt(daily.PrecipitationProbabilityMax, i),
		})
	}

	return CanonicalWeather{
		Current: current,
		Hourly:  hourlyList,
		Daily:   dailyList,
		Alerts:  []Alert{},
	}
}

// parseEpoch returns Unix seconds for an ISO-8601 string, or 0 if it cannot be parsed.
func parseEpoch(s string) int64 {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Unix()
		}
	}
	return 0
}

func intAt(values []*int, i int) *int {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func floatAt(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}
