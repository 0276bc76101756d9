package handler

import (
	"errors"
	"strings"

	"exhibition_manager/constants"
	"exhibition_manager/database"
	"exhibition_manager/helper"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetLocations(c *fiber.Ctx) error {
	filterInput := new(model.FilterLocation)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Location{})

	if filterInput.SearchKey != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filterInput.SearchKey)) + "%"
		condition = condition.Where(
			db.Where("LOWER(name) LIKE ?", search).
				Or("LOWER(city) LIKE ?", search).
				Or("LOWER(address) LIKE ?", search),
		)
	}
	if filterInput.City != "" {
		condition = condition.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(filterInput.City)+"%")
	}

	var totalCount int64
	condition.Count(&totalCount)

	var locations []model.Location
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("name ASC").Find(&locations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       locations,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetLocationById(c *fiber.Ctx) error {
	locationId := c.Locals("inputId").(int)

	var location model.Location
	if err := database.DB.Preload("Exhibitions").First(&location, locationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.LOCATION_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, location)
}

func CreateLocation(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateLocationInput)

	location := model.Location{
		Name:        input.Name,
		City:        input.City,
		Address:     input.Address,
		Description: input.Description,
	}

	if err := database.DB.Create(&location).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, location)
}

func EditLocation(c *fiber.Ctx) error {
	input := c.Locals("input").(model.EditLocationInput)
	locationId := c.Locals("inputId").(int)

	db := database.DB
	var location model.Location
	if err := db.First(&location, locationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.LOCATION_NOT_FOUND, err)
	}

	if err := copier.CopyWithOption(&location, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Save(&location).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, location)
}

func DeleteLocation(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	input := c.Locals("deleteIds").(model.ArrayId)

	db := database.DB

	// A location that still hosts exhibitions cannot be removed.
	var count int64
	db.Model(&model.Exhibition{}).Where("location_id IN ?", input.IDs).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.LOCATION_HAS_EXHIBITS, errors.New("location referenced"))
	}

	if err := db.Delete(&model.Location{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}
