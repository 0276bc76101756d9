package handler

import (
	"errors"
	"fmt"
	"time"

	"exhibition_manager/constants"
	"exhibition_manager/database"
	"exhibition_manager/helper"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateRegistration books tickets for the authenticated user. The
// capacity check and the insert run atomically per exhibition, so racing
// requests can never oversubscribe (see helper.ReserveRegistration).
func CreateRegistration(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateRegistrationInput)

	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, errors.New("no authenticated user"))
	}

	db := database.DB

	var exhibition model.Exhibition
	if err := db.Preload("Location").First(&exhibition, input.ExhibitionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXHIBITION_NOT_FOUND, err)
	}
	// Unpublished exhibitions do not exist for booking purposes.
	if exhibition.Published == nil || !*exhibition.Published {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXHIBITION_NOT_FOUND, errors.New("exhibition not published"))
	}

	remaining, err := helper.RemainingSeats(db, &exhibition)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	availability, err := helper.EvaluateAvailability(time.Now(), &exhibition, remaining)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	active := exhibition.Active != nil && *exhibition.Active
	if availability.State == constants.ExhibitionEnded || !active {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EXHIBITION_NOT_BOOKABLE, errors.New("not bookable"))
	}

	registration := model.Registration{
		ExhibitionId:    exhibition.ID,
		UserId:          user.ID,
		TicketCount:     input.TicketCount,
		RedemptionToken: helper.MintRedemptionToken(),
	}

	// The remaining-seats comparison happens again inside the reserve,
	// under the per-exhibition lock; the value above is advisory only.
	// The one-registration-per-user guard also lives in that critical
	// section, so racing duplicates cannot both slip through.
	left, err := helper.ReserveRegistration(db, &exhibition, &registration)
	if err != nil {
		if errors.Is(err, helper.ErrAlreadyRegistered) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ALREADY_REGISTERED, err)
		}
		if errors.Is(err, helper.ErrCapacityExceeded) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict,
				fmt.Sprintf("%s. Remaining: %d", constants.EXHIBITION_SOLD_OUT, left),
				err, "ticketCount")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	invalidateAvailabilityCache(exhibition.ID)

	locationLine := ""
	if exhibition.Location.ID > 0 {
		locationLine = fmt.Sprintf("%s, %s", exhibition.Location.Name, exhibition.Location.Address)
	}
	helper.SendRegistrationEmailAsync(registration.ID, user.Email, helper.RegistrationEmailData{
		FullName:        user.FullName,
		ExhibitionTitle: exhibition.Title,
		DateRange:       fmt.Sprintf("%s - %s", exhibition.StartDate.String(), exhibition.EndDate.String()),
		LocationLine:    locationLine,
		TicketCount:     registration.TicketCount,
		Token:           registration.RedemptionToken,
	})

	registration.Exhibition = exhibition

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"registration":   registration,
		"remainingSeats": left,
	})
}

func GetMyRegistrations(c *fiber.Ctx) error {
	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, errors.New("no authenticated user"))
	}

	var registrations []model.Registration
	err := database.DB.
		Preload("Exhibition").Preload("Exhibition.Location").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, registrations)
}

func GetRegistrations(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterRegistrationInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Registration{})

	if filterInput.ExhibitionId > 0 {
		condition = condition.Where("exhibition_id = ?", filterInput.ExhibitionId)
	}
	if filterInput.Validated != nil {
		condition = condition.Where("validated = ?", *filterInput.Validated)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var registrations []model.Registration
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	err := condition.
		Preload("Exhibition").Preload("User").
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       registrations,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetRegistrationById(c *fiber.Ctx) error {
	registrationId := c.Locals("inputId").(int)

	_, user, isAdmin := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, errors.New("no authenticated user"))
	}

	var registration model.Registration
	err := database.DB.
		Preload("Exhibition").Preload("Exhibition.Location").
		First(&registration, registrationId).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, err)
	}

	if !isAdmin && registration.UserId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_REGISTRATION_OWNER, errors.New("not owner"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, registration)
}

// GetRegistrationQRCode streams the scannable PNG for a registration.
func GetRegistrationQRCode(c *fiber.Ctx) error {
	registrationId := c.Locals("inputId").(int)

	_, user, isAdmin := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, errors.New("no authenticated user"))
	}

	var registration model.Registration
	if err := database.DB.First(&registration, registrationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, err)
	}

	if !isAdmin && registration.UserId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_REGISTRATION_OWNER, errors.New("not owner"))
	}

	qrBytes, err := utils.GenerateQRCode(registration.RedemptionToken, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Type("png")
	return c.Send(qrBytes)
}

// ValidateTicket consumes a redemption token. Exactly one scan succeeds;
// replays get 409, unknown tokens 404.
func ValidateTicket(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	token := c.Params("token")

	registration, err := helper.RedeemToken(database.DB, token)
	if err != nil {
		if errors.Is(err, helper.ErrTokenNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TOKEN_NOT_FOUND, err)
		}
		if errors.Is(err, helper.ErrAlreadyValidated) {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.TICKET_ALREADY_VALIDATED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	invalidateAvailabilityCache(registration.ExhibitionId)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"registration": registration,
		"holder":       registration.User.FullName,
		"ticketCount":  registration.TicketCount,
		"validatedAt":  registration.ValidatedAt,
	})
}

// CancelRegistration releases held capacity. Validated tickets can no
// longer be cancelled.
func CancelRegistration(c *fiber.Ctx) error {
	registrationId := c.Locals("inputId").(int)

	_, user, isAdmin := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, errors.New("no authenticated user"))
	}

	db := database.DB
	var registration model.Registration
	if err := db.First(&registration, registrationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, err)
	}

	if !isAdmin && registration.UserId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_REGISTRATION_OWNER, errors.New("not owner"))
	}

	if registration.Validated {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CANNOT_CANCEL_VALIDATED, errors.New("already validated"))
	}

	if err := helper.ReleaseRegistration(db, &registration); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	invalidateAvailabilityCache(registration.ExhibitionId)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"cancelled":    registration.ID,
		"ticketsFreed": registration.TicketCount,
		"exhibitionId": registration.ExhibitionId,
	})
}
