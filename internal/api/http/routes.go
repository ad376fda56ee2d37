package httpapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/meteo-dashboard/internal/consult"
	"github.com/i474232898/meteo-dashboard/internal/logging"
	"github.com/i474232898/meteo-dashboard/internal/weather"
)

// RequestIDKey is the fiber.Ctx locals key holding the request id.
const RequestIDKey = "requestid"

//go:embed static/index.html
var indexHTML []byte

var validate = validator.New()

// WeatherReader serves the live canonical payload.
type WeatherReader interface {
	Current(ctx context.Context, loc weather.Location) (weather.CanonicalWeather, error)
}

// Deps are the collaborators the routes need.
type Deps struct {
	Weather       WeatherReader
	Geocoder      weather.Geocoder
	Consultations *consult.Service
	Logger        *zap.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(indexHTML)
	})

	api := app.Group("/api")

	api.Get("/weather", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon required")
		}

		payload, err := deps.Weather.Current(c.UserContext(), loc)
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(payload)
	})

	api.Get("/geocode", func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q required")
		}

		place, err := deps.Geocoder.Search(c.UserContext(), q)
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(place)
	})

	api.Post("/consult", func(c *fiber.Ctx) error {
		var req consult.Request
		if body := c.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
			}
		}

		logger := logging.WithRequestID(deps.Logger, requestID(c))
		record, err := deps.Consultations.Create(c.UserContext(), req, logger)
		if err != nil {
			return toAPIError(err)
		}

		return c.JSON(fiber.Map{
			"ok":           true,
			"consultation": record,
		})
	})

	api.Get("/consultations", func(c *fiber.Ctx) error {
		return c.JSON(deps.Consultations.List())
	})

	api.Get("/report_pdf", func(c *fiber.Ctx) error {
		// Ids start at 1, so an unparsable id falls through to not-found.
		id, err := strconv.Atoi(c.Query("id"))
		if err != nil {
			id = 0
		}

		doc, err := deps.Consultations.ReportPDF(id)
		if err != nil {
			return toAPIError(err)
		}

		c.Attachment(fmt.Sprintf("consult_%d.pdf", id))
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(doc)
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	Lat string `validate:"required,numeric"`
	Lon string `validate:"required,numeric"`
}

func parseLocationQuery(c *fiber.Ctx) (weather.Location, error) {
	q := locationQuery{
		Lat: strings.TrimSpace(c.Query("lat")),
		Lon: strings.TrimSpace(c.Query("lon")),
	}
	if err := validate.Struct(q); err != nil {
		return weather.Location{}, err
	}

	lat, err := strconv.ParseFloat(q.Lat, 64)
	if err != nil {
		return weather.Location{}, err
	}
	lon, err := strconv.ParseFloat(q.Lon, 64)
	if err != nil {
		return weather.Location{}, err
	}
	return weather.Location{Lat: lat, Lon: lon}, nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
