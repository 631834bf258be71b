package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/avilik92/weather-dashboard/internal/dashboard"
	"github.com/avilik92/weather-dashboard/internal/weather"
)

var validate = validator.New()

// Advisor produces a short advice text for a snapshot; it never fails.
type Advisor interface {
	Generate(ctx context.Context, snap *weather.Snapshot) string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, ctrl *dashboard.Controller, advisor Advisor, defaultLoc weather.Location) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		req, err := parseDashboardQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap, err := ctrl.Refresh(c.Context(), req.toQuery(defaultLoc), req.Count)
		if err != nil {
			return mapDomainError(err)
		}

		return c.JSON(snap)
	})

	v1.Get("/settings", func(c *fiber.Ctx) error {
		settings, err := ctrl.Settings(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load settings")
		}
		return c.JSON(settings)
	})

	v1.Put("/settings", func(c *fiber.Ctx) error {
		var req settingsUpdate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap, err := applySettings(c.Context(), ctrl, req)
		if err != nil {
			return mapDomainError(err)
		}

		settings, err := ctrl.Settings(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load settings")
		}

		return c.JSON(fiber.Map{
			"settings": settings,
			"snapshot": snap,
		})
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"online": ctrl.Online(),
		})
	})

	v1.Get("/advice", func(c *fiber.Ctx) error {
		snap := ctrl.Current()
		if snap == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather data loaded yet")
		}
		return c.JSON(fiber.Map{
			"advice": advisor.Generate(c.Context(), snap),
		})
	})
}

// applySettings runs the requested preference changes in order. Unit and
// clock changes re-derive the held snapshot in place; nothing is re-fetched.
func applySettings(ctx context.Context, ctrl *dashboard.Controller, req settingsUpdate) (*weather.Snapshot, error) {
	var snap *weather.Snapshot

	if req.Units != nil {
		units, err := weather.ParseUnitSystem(*req.Units)
		if err != nil {
			return nil, err
		}
		s, err := ctrl.SetUnits(ctx, units)
		if err != nil {
			return nil, err
		}
		snap = s
	}

	if req.Hour12 != nil {
		s, err := ctrl.SetClockFormat(ctx, *req.Hour12)
		if err != nil {
			return nil, err
		}
		snap = s
	}

	if req.DarkMode != nil {
		if err := ctrl.SetDarkMode(ctx, *req.DarkMode); err != nil {
			return nil, err
		}
	}

	if snap == nil {
		snap = ctrl.Current()
	}
	return snap, nil
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, weather.ErrNoCachedData):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrInvalidUnitSystem), errors.Is(err, weather.ErrInvalidConversion):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrUpstreamFetch), errors.Is(err, weather.ErrPartialData):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to build weather dashboard")
}

// dashboardQuery holds query parameters addressing a fetch cycle.
type dashboardQuery struct {
	City  string
	Lat   *float64
	Lon   *float64
	Count int `validate:"omitempty,min=1,max=16"`
}

func (d dashboardQuery) toQuery(defaultLoc weather.Location) weather.Query {
	if d.City != "" {
		return weather.Query{City: d.City}
	}
	if d.Lat != nil && d.Lon != nil {
		return weather.Query{Coords: &weather.Location{Lat: *d.Lat, Lon: *d.Lon}}
	}
	return weather.Query{Coords: &defaultLoc}
}

func parseDashboardQuery(c *fiber.Ctx) (dashboardQuery, error) {
	var q dashboardQuery

	q.City = c.Query("city")

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if (latStr == "") != (lonStr == "") {
		return q, errors.New("lat and lon must be provided together")
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return q, errors.New("invalid lat")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return q, errors.New("invalid lon")
		}
		q.Lat, q.Lon = &lat, &lon
	}

	if q.City != "" && q.Lat != nil {
		return q, errors.New("use either city or lat/lon, not both")
	}

	if countStr := c.Query("count"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return q, errors.New("invalid count")
		}
		q.Count = count
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// settingsUpdate is the PUT /settings body; every field is optional.
type settingsUpdate struct {
	Units    *string `json:"unitSystem" validate:"omitempty,oneof=metric imperial standard"`
	Hour12   *bool   `json:"hour12"`
	DarkMode *bool   `json:"darkMode"`
}
