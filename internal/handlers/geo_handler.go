package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/geo"
)

type GeoHandler struct {
	geocoder *geo.Geocoder
	locator  *geo.Locator
}

func NewGeoHandler(geocoder *geo.Geocoder, locator *geo.Locator) *GeoHandler {
	return &GeoHandler{geocoder: geocoder, locator: locator}
}

// Resolve picks the usable fix out of a batch of device watch samples and
// reverse-geocodes it.
func (h *GeoHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	samples := make([]geo.Sample, len(req.Samples))
	for i, s := range req.Samples {
		samples[i] = geo.Sample{Lat: s.Lat, Lng: s.Lng, Accuracy: s.Accuracy}
	}

	fix, err := h.locator.LocateSamples(c.Context(), samples)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: "No usable position fix",
		})
	}

	return c.JSON(dto.ResolveLocationResponse{
		Lat:      fix.Lat,
		Lng:      fix.Lng,
		Accuracy: fix.Accuracy,
		Address:  fix.Address,
	})
}

// Reverse resolves coordinates to a display address. Always 200: geocoding
// failures degrade to the raw coordinate pair inside the geocoder.
func (h *GeoHandler) Reverse(c *fiber.Ctx) error {
	var req dto.ReverseGeocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	addr := h.geocoder.Reverse(c.Context(), req.Lat, req.Lng)
	return c.JSON(dto.ReverseGeocodeResponse{Address: addr})
}
