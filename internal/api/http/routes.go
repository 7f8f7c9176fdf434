package httpapi

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-monitor/internal/weather"
)

var validate = validator.New()

// defaultSamples is what POST /add-sample-data inserts when the body is empty.
var defaultSamples = []sampleSummary{
	{City: "Delhi", AvgTemp: ptr(32), MaxTemp: ptr(35), MinTemp: ptr(30), DominantCondition: "Clear"},
	{City: "Mumbai", AvgTemp: ptr(30), MaxTemp: ptr(33), MinTemp: ptr(28), DominantCondition: "Cloudy"},
	{City: "Chennai", AvgTemp: ptr(34), MaxTemp: ptr(36), MinTemp: ptr(32), DominantCondition: "Sunny"},
	{City: "Bangalore", AvgTemp: ptr(28), MaxTemp: ptr(30), MinTemp: ptr(25), DominantCondition: "Rain"},
	{City: "Kolkata", AvgTemp: ptr(31), MaxTemp: ptr(33), MinTemp: ptr(29), DominantCondition: "Haze"},
	{City: "Hyderabad", AvgTemp: ptr(29), MaxTemp: ptr(31), MinTemp: ptr(27), DominantCondition: "Mist"},
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-monitor",
			"cities":  service.Cities(),
		})
	})

	app.Get("/weather-summaries", func(c *fiber.Ctx) error {
		summaries, err := service.ListSummaries(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather summaries")
		}
		return c.JSON(summaries)
	})

	app.Get("/current-weather", func(c *fiber.Ctx) error {
		return c.JSON(service.CurrentSnapshot())
	})

	app.Post("/add-sample-data", func(c *fiber.Ctx) error {
		req, err := bindSamples(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summaries := make([]weather.DailySummary, 0, len(req.Summaries))
		for _, s := range req.Summaries {
			summaries = append(summaries, s.toSummary())
		}

		if err := service.SeedSummaries(c.UserContext(), summaries); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "error adding sample data")
		}
		return c.JSON(fiber.Map{
			"message":  "sample data added successfully",
			"inserted": len(summaries),
		})
	})
}

// sampleSummary is one summary supplied to the seed endpoint.
type sampleSummary struct {
	City              string   `json:"city" validate:"required"`
	AvgTemp           *float64 `json:"avgTemp" validate:"required"`
	MaxTemp           *float64 `json:"maxTemp" validate:"required"`
	MinTemp           *float64 `json:"minTemp" validate:"required"`
	DominantCondition string   `json:"dominantCondition" validate:"required"`
}

func (s sampleSummary) toSummary() weather.DailySummary {
	return weather.DailySummary{
		City:              s.City,
		AvgTemp:           *s.AvgTemp,
		MaxTemp:           *s.MaxTemp,
		MinTemp:           *s.MinTemp,
		DominantCondition: s.DominantCondition,
	}
}

type sampleRequest struct {
	Summaries []sampleSummary `validate:"min=1,dive"`
}

func bindSamples(c *fiber.Ctx) (sampleRequest, error) {
	req := sampleRequest{Summaries: defaultSamples}
	if len(c.Body()) > 0 {
		req.Summaries = nil
		if err := c.BodyParser(&req.Summaries); err != nil {
			return req, errors.New("body must be a JSON array of summaries")
		}
	}

	if err := validate.Struct(req); err != nil {
		return req, err
	}
	for i, s := range req.Summaries {
		if *s.MaxTemp < *s.MinTemp {
			return req, fmt.Errorf("summary %d (%s): maxTemp is below minTemp", i, s.City)
		}
	}
	return req, nil
}

func ptr(v float64) *float64 { return &v }
