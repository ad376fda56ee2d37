package consult

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

// DefaultIndustry is used when a request names none.
const DefaultIndustry = "General"

// CreatedAtLayout renders creation timestamps in UTC with microseconds.
const CreatedAtLayout = "2006-01-02T15:04:05.000000Z07:00"

// Consultation is a stored risk assessment request. It is never mutated after creation.
type Consultation struct {
	ID            int                      `json:"id"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	Lat           float64                  `json:"lat"`
	Lon           float64                  `json:"lon"`
	Industry      string                   `json:"industry"`
	Notes         string                   `json:"notes"`
	LocationLabel string                   `json:"locationLabel,omitempty"`
	CreatedAt     string                   `json:"createdAt"`
	Weather       weather.CanonicalWeather `json:"weather"`
	Risk          weather.Risk             `json:"risk"`
	Report        string                   `json:"report"`
}

// Request is the body of a consultation request.
type Request struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required"`
	Lat      Coordinate `json:"lat"`
	Lon      Coordinate `json:"lon"`
	Industry *string    `json:"industry"`
	Notes    *string    `json:"notes"`
}

// Coordinate accepts a JSON number or a numeric string and keeps the text as supplied.
// Decoding never fails; unusable input leaves Valid false.
type Coordinate struct {
	Raw   string
	Value float64
	Valid bool
}

// NewCoordinate builds a valid Coordinate from a float.
func NewCoordinate(v float64) Coordinate {
	return Coordinate{Raw: strconv.FormatFloat(v, 'f', -1, 64), Value: v, Valid: true}
}

// ParseCoordinate parses s as a finite float.
func ParseCoordinate(s string) Coordinate {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Coordinate{Raw: s}
	}
	return Coordinate{Raw: s, Value: v, Valid: true}
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*c = Coordinate{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*c = Coordinate{Raw: s}
			return nil
		}
		s = str
	}
	*c = ParseCoordinate(s)
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(c.Value, 'f', -1, 64)), nil
}
