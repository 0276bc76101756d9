package validate

import (
	"errors"
	"strconv"

	"exhibition_manager/constants"
	"exhibition_manager/database"
	"exhibition_manager/helper"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateExhibition() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _, isAdmin := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		var input model.CreateExhibitionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.EndDate.Time.Before(input.StartDate.Time) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				"End date must not be before start date", errors.New("invalid date range"), "endDate")
		}

		db := database.DB
		var location model.Location
		if err := db.First(&location, input.LocationId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				constants.LOCATION_NOT_FOUND, err, "locationId")
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func EditExhibition(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _, isAdmin := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		c.Locals("inputId", id)

		var input model.EditExhibitionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.StartDate != nil && input.EndDate != nil &&
			input.EndDate.Time.Before(input.StartDate.Time) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				"End date must not be before start date", errors.New("invalid date range"), "endDate")
		}

		if input.LocationId != nil {
			var location model.Location
			if err := database.DB.First(&location, *input.LocationId).Error; err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
					constants.LOCATION_NOT_FOUND, err, "locationId")
			}
		}

		c.Locals("input", input)
		return c.Next()
	}
}
