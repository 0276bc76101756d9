package handler

import (
	"errors"
	"time"

	"exhibition_manager/constants"
	"exhibition_manager/database"
	"exhibition_manager/helper"
	"exhibition_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAttendanceReport summarizes validated vs no-show tickets per
// exhibition. Defaults to the last 90 days when no range is given.
func GetAttendanceReport(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	to := time.Now()
	from := to.AddDate(0, 0, -90)

	if raw := c.Query("fromDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		from = parsed
	}
	if raw := c.Query("toDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		to = parsed
	}
	if to.Before(from) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("toDate before fromDate"))
	}

	rows, summary, err := helper.GetAttendanceReport(database.DB, from, to)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"rows":    rows,
		"summary": summary,
	})
}
