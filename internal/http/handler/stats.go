package handler

import (
	"github.com/gofiber/fiber/v2"

	"argprep/internal/service"
)

// Statistics reports store-wide counts of cases, documents and follow-ups.
//
// @Summary  Case statistics
// @Tags     statistics
// @Produce  json
// @Success  200 {object} model.CaseStats
// @Failure  500 {object} errorPayload
// @Router   /statistics [get]
func Statistics(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Statistics(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}
