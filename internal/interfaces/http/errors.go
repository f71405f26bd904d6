package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bill-detail/internal/application/dto"
	"github.com/jhoicas/bill-detail/internal/domain"
)

var errInvalidID = errors.New("id de factura inválido")

// parseBillID acepta solo enteros positivos.
func parseBillID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// httpError traduce un error a status, código y mensaje para el cliente.
func httpError(err error) (int, dto.ErrorResponse) {
	if errors.Is(err, errInvalidID) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "id debe ser un entero positivo"}
	}
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura o local no encontrado"}
	case domain.KindStoreUnavailable:
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible, intente más tarde"}
	case domain.KindRenderFailure:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "RENDER_FAILURE", Message: "no se pudo generar el PDF"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}

func writeJSONError(c *fiber.Ctx, err error) error {
	status, body := httpError(err)
	return c.Status(status).JSON(body)
}
