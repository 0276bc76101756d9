package validate

import (
	"errors"

	"exhibition_manager/constants"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateRegistration() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateRegistrationInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.TicketCount < 1 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				"Ticket count must be at least 1", errors.New("invalid ticket count"), "ticketCount")
		}

		c.Locals("input", input)
		return c.Next()
	}
}
