package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/guide48/peak-planner/internal/peaks"
	"github.com/guide48/peak-planner/internal/plan"
	"github.com/guide48/peak-planner/internal/store"
	"github.com/guide48/peak-planner/internal/trip"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *trip.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/peaks", func(c *fiber.Ctx) error {
		return c.JSON(service.Peaks())
	})

	v1.Get("/peaks/resolve", func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name query parameter is required")
		}

		group, err := service.ResolvePeak(name)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(group)
	})

	v1.Post("/plan", func(c *fiber.Ctx) error {
		var req planRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		dayPlan, err := service.PlanDay(req.PeakName, req.SunriseISO, req.SunsetISO, req.DurationHours)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(dayPlan)
	})

	v1.Post("/risk", func(c *fiber.Ctx) error {
		var req riskRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report := service.ScoreRisk(req.PeakName, req.TimesISO, req.ApparentF, req.GustMph, req.PrecipProb, req.WindowHours)
		return c.JSON(report)
	})

	v1.Post("/blocks/normalize", func(c *fiber.Ctx) error {
		var req blocksRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"blocks": service.NormalizeBlocks(req.Blocks),
		})
	})

	v1.Get("/trip", func(c *fiber.Ctx) error {
		var req tripQuery
		req.Peak = c.Query("peak")
		req.Date = c.Query("date")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := service.PlanTrip(c.Context(), req.Peak, req.Date)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(snapshot)
	})

	v1.Get("/trip/latest", func(c *fiber.Ctx) error {
		name := c.Query("peak")
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "peak query parameter is required")
		}

		snapshot, err := service.LatestTrip(name)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(snapshot)
	})
}

// planRequest is the body for the plan endpoint. DurationHours, when
// supplied, overrides the duration table lookup.
type planRequest struct {
	PeakName      string   `json:"peakName" validate:"required"`
	SunriseISO    string   `json:"sunriseISO" validate:"required"`
	SunsetISO     string   `json:"sunsetISO" validate:"required"`
	DurationHours *float64 `json:"durationHours" validate:"omitempty,gt=0"`
}

// riskRequest is the body for the risk endpoint. Value arrays are parallel to
// TimesISO; empty arrays are allowed and yield null summary stats.
type riskRequest struct {
	PeakName    string    `json:"peakName" validate:"required"`
	TimesISO    []string  `json:"timesISO"`
	ApparentF   []float64 `json:"apparentF"`
	GustMph     []float64 `json:"gustMph"`
	PrecipProb  []float64 `json:"precipProb"`
	WindowHours int       `json:"windowHours" validate:"omitempty,min=1,max=48"`
}

// blocksRequest carries loosely shaped upstream blocks for normalization.
type blocksRequest struct {
	Blocks []map[string]any `json:"blocks"`
}

// tripQuery holds query parameters for a full planning round.
type tripQuery struct {
	Peak string `validate:"required"`
	Date string `validate:"required,datetime=2006-01-02"`
}

// mapServiceError translates engine errors into HTTP status codes. Anything
// unrecognized is assumed to be an upstream provider failure.
func mapServiceError(err error) error {
	var notFound *peaks.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.NewError(fiber.StatusNotFound, notFound.Error())
	}

	var badTime *plan.InvalidTimeError
	if errors.As(err, &badTime) {
		return fiber.NewError(fiber.StatusBadRequest, badTime.Error())
	}

	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return fiber.NewError(fiber.StatusBadGateway, err.Error())
}
