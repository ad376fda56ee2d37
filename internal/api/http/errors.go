package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/meteo-dashboard/internal/consult"
	"github.com/i474232898/meteo-dashboard/internal/weather"
)

// apiError is an error with an HTTP status and an optional diagnostic.
type apiError struct {
	Status  int
	Message string
	Details string
}

func (e *apiError) Error() string { return e.Message }

// ErrorHandler renders every error as {"error": ...} JSON, adding "details" for gateway failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		ae *apiError
		fe *fiber.Error
	)

	code := fiber.StatusInternalServerError
	body := fiber.Map{"error": "internal server error"}

	switch {
	case errors.As(err, &ae):
		code = ae.Status
		body["error"] = ae.Message
		if ae.Details != "" {
			body["details"] = ae.Details
		}
	case errors.As(err, &fe):
		code = fe.Code
		body["error"] = fe.Message
	}

	return c.Status(code).JSON(body)
}

// toAPIError maps domain errors to HTTP responses.
func toAPIError(err error) error {
	var ve *consult.ValidationError

	switch {
	case errors.As(err, &ve):
		return &apiError{Status: fiber.StatusBadRequest, Message: ve.Msg}
	case errors.Is(err, weather.ErrUpstreamFetch):
		return &apiError{Status: fiber.StatusBadGateway, Message: "Failed to fetch weather", Details: err.Error()}
	case errors.Is(err, weather.ErrPlaceNotFound):
		return &apiError{Status: fiber.StatusNotFound, Message: "Location not found"}
	case errors.Is(err, consult.ErrNotFound):
		return &apiError{Status: fiber.StatusNotFound, Message: "not found"}
	case errors.Is(err, consult.ErrPDFUnavailable):
		return &apiError{Status: fiber.StatusNotImplemented, Message: "PDF unavailable"}
	default:
		return err
	}
}
