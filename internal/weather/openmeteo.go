package weather

// ForecastResponse mirrors the subset of the Open-Meteo /v1/forecast response we consume.
// Array elements are pointers because the API emits null for missing samples.
type ForecastResponse struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
	Hourly         *HourlySeries   `json:"hourly"`
	Daily          *DailySeries    `json:"daily"`
}

// CurrentWeather is the current_weather block.
type CurrentWeather struct {
	Temperature *float64 `json:"temperature"`
	WindSpeed   *float64 `json:"windspeed"`
	WeatherCode *int     `json:"weathercode"`
	Time        string   `json:"time"`
}

// HourlySeries holds the parallel hourly arrays.
type HourlySeries struct {
	Time               []string   `json:"time"`
	Temperature2m      []*float64 `json:"temperature_2m"`
	WeatherCode        []*int     `json:"weathercode"`
	RelativeHumidity2m []*float64 `json:"relativehumidity_2m"`
}

// DailySeries holds the parallel daily arrays.
type DailySeries struct {
	Time                        []string   `json:"time"`
	Temperature2mMax            []*float64 `json:"temperature_2m_max"`
	Temperature2mMin            []*float64 `json:"temperature_2m_min"`
	WeatherCode                 []*int     `json:"weathercode"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
}

// Query parameters requested from Open-Meteo.
const (
	HourlyFields = "temperature_2m,weathercode,relativehumidity_2m,windspeed_10m"
	DailyFields  = "temperature_2m_max,temperature_2m_min,weathercode,precipitation_probability_max"
)
