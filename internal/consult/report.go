package consult

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

const missingValue = "N/A"

// ReportFields are the identity fields printed in a report.
// Lat and Lon are printed verbatim.
type ReportFields struct {
	ID        int
	CreatedAt string
	Lat       string
	Lon       string
	Industry  string
	Notes     string
}

// RenderReport formats the plain-text consultation report. Output depends only
// on its arguments.
func RenderReport(f ReportFields, current weather.Current, hazards []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Consultation Report #%d\n", f.ID)
	fmt.Fprintf(&b, "Generated: %s\n\n", f.CreatedAt)

	fmt.Fprintf(&b, "Location: %s, %s\n", f.Lat, f.Lon)
	fmt.Fprintf(&b, "Industry: %s\n\n", f.Industry)

	b.WriteString("Current Weather:\n")
	fmt.Fprintf(&b, "- Temp: %s°C\n", formatValue(current.Temperature))
	fmt.Fprintf(&b, "- Feels Like: %s°C\n", formatValue(current.FeelsLike))
	fmt.Fprintf(&b, "- Wind: %s m/s\n", formatValue(current.WindSpeed))
	fmt.Fprintf(&b, "- Humidity: %s%%\n\n", formatValue(current.Humidity))

	b.WriteString("Risk Assessment:\n")
	if len(hazards) == 0 {
		b.WriteString("- No major hazards.\n")
	}
	for _, h := range hazards {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	b.WriteString("\n")

	notes := f.Notes
	if strings.TrimSpace(notes) == "" {
		notes = "None"
	}
	fmt.Fprintf(&b, "Notes:\n%s\n\n", notes)

	b.WriteString("(This report is auto-generated.)")
	return b.String()
}

func formatValue(v *float64) string {
	if v == nil {
		return missingValue
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
