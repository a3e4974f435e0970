package handlers

import (
	"errors"
	"net/http"

	"enclosure-designer/internal/designer/composer"
	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/sketch"
	"enclosure-designer/internal/designer/solid"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Build errors
// ============================================================

var errorKinds = []struct {
	err  error
	kind string
}{
	{models.ErrInvalidParameter, "InvalidParameterError"},
	{sketch.ErrOpenProfile, "OpenProfileError"},
	{sketch.ErrUnreachableTarget, "UnreachableTargetError"},
	{sketch.ErrUnknownTag, "UnknownTagError"},
	{sketch.ErrDuplicateTag, "DuplicateTagError"},
	{solid.ErrChamferTooLarge, "ChamferTooLargeError"},
	{solid.ErrInvalidChamfer, "InvalidChamferError"},
	{solid.ErrUnknownEdge, "UnknownEdgeError"},
	{solid.ErrUnknownFace, "UnknownFaceError"},
	{solid.ErrUnknownPlane, "UnknownPlaneError"},
	{solid.ErrDegenerateExtrusion, "DegenerateExtrusionError"},
	{composer.ErrDoesNotFit, "DoesNotFitError"},
}

func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "BuildError"
}

// buildError 400 для неверных параметров, 422 для нарушенного геометрического ограничения.
func buildError(c fiber.Ctx, err error) error {
	var be *composer.BuildError
	if !errors.As(err, &be) {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := http.StatusUnprocessableEntity
	if errors.Is(err, models.ErrInvalidParameter) {
		status = http.StatusBadRequest
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   be.Error(),
		"feature": be.Feature,
		"step":    be.Step,
		"kind":    errorKind(be.Err),
	})
}
