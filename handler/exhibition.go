package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"exhibition_manager/constants"
	"exhibition_manager/database"
	"exhibition_manager/helper"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const availabilityCacheTTL = 30 * time.Second

func availabilityCacheKey(exhibitionId uint) string {
	return fmt.Sprintf("availability:%d", exhibitionId)
}

// invalidateAvailabilityCache drops the cached availability after any
// mutation that changes remaining seats or bookability.
func invalidateAvailabilityCache(exhibitionId uint) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), availabilityCacheKey(exhibitionId))
}

func attachRemainingSeats(db *gorm.DB, exhibition *model.Exhibition) error {
	remaining, err := helper.RemainingSeats(db, exhibition)
	if err != nil {
		return err
	}
	exhibition.RemainingSeats = remaining
	return nil
}

func GetExhibitions(c *fiber.Ctx) error {
	filterInput := new(model.FilterExhibition)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	_, _, isAdmin := helper.GetInfoUserFromToken(c)

	db := database.DB
	condition := db.Model(&model.Exhibition{}).
		Joins("JOIN locations ON locations.id = exhibitions.location_id")

	// Unpublished exhibitions exist only for admins.
	if !isAdmin {
		condition = condition.Where("exhibitions.published = ?", true)
	} else if filterInput.Published != nil {
		condition = condition.Where("exhibitions.published = ?", *filterInput.Published)
	}

	if filterInput.SearchKey != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filterInput.SearchKey)) + "%"
		condition = condition.Where(
			db.Where("LOWER(exhibitions.title) LIKE ?", search).
				Or("LOWER(exhibitions.description) LIKE ?", search).
				Or("LOWER(exhibitions.short_description) LIKE ?", search),
		)
	}
	if filterInput.City != "" {
		condition = condition.Where("LOWER(locations.city) LIKE ?", "%"+strings.ToLower(filterInput.City)+"%")
	}
	if filterInput.Active != nil {
		condition = condition.Where("exhibitions.active = ?", *filterInput.Active)
	}
	if filterInput.FromDate != nil {
		condition = condition.Where("exhibitions.start_date >= ?", filterInput.FromDate.Format("2006-01-02"))
	}
	if filterInput.ToDate != nil {
		condition = condition.Where("exhibitions.end_date <= ?", filterInput.ToDate.Format("2006-01-02"))
	}

	var totalCount int64
	condition.Count(&totalCount)

	var exhibitions []model.Exhibition
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	err := condition.
		Order("exhibitions.start_date DESC").
		Preload("Location").
		Preload("Media").
		Find(&exhibitions).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for i := range exhibitions {
		if err := attachRemainingSeats(db, &exhibitions[i]); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       exhibitions,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func findVisibleExhibition(c *fiber.Ctx, query *gorm.DB) (*model.Exhibition, error) {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)

	var exhibition model.Exhibition
	if err := query.Preload("Location").Preload("Media").First(&exhibition).Error; err != nil {
		return nil, err
	}
	if !isAdmin && (exhibition.Published == nil || !*exhibition.Published) {
		return nil, gorm.ErrRecordNotFound
	}
	return &exhibition, nil
}

func GetExhibitionById(c *fiber.Ctx) error {
	exhibitionId := c.Locals("inputId").(int)

	db := database.DB
	exhibition, err := findVisibleExhibition(c, db.Where("id = ?", exhibitionId))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXHIBITION_NOT_FOUND, err)
	}

	if err := attachRemainingSeats(db, exhibition); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exhibition)
}

func GetExhibitionBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	db := database.DB
	exhibition, err := findVisibleExhibition(c, db.Where("slug = ?", slug))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXHIBITION_NOT_FOUND, err)
	}

	if err := attachRemainingSeats(db, exhibition); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exhibition)
}

// GetExhibitionAvailability reports {state, bookable, remainingSeats}.
// Responses are cached briefly in redis when it is configured. The
// visibility check runs before any cache access, and only published
// exhibitions are ever cached, so an admin looking at an unpublished
// exhibition can never leak its availability to anonymous callers.
func GetExhibitionAvailability(c *fiber.Ctx) error {
	exhibitionId := c.Locals("inputId").(int)

	db := database.DB
	exhibition, err := findVisibleExhibition(c, db.Where("id = ?", exhibitionId))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXHIBITION_NOT_FOUND, err)
	}

	published := exhibition.Published != nil && *exhibition.Published

	if database.Redis != nil && published {
		cached, err := database.Redis.Get(c.Context(), availabilityCacheKey(exhibition.ID)).Result()
		if err == nil {
			var availability model.Availability
			if json.Unmarshal([]byte(cached), &availability) == nil {
				return utils.SuccessResponse(c, fiber.StatusOK, availability)
			}
		}
	}

	remaining, err := helper.RemainingSeats(db, exhibition)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	availability, err := helper.EvaluateAvailability(time.Now(), exhibition, remaining)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if database.Redis != nil && published {
		if payload, err := json.Marshal(availability); err == nil {
			database.Redis.Set(c.Context(), availabilityCacheKey(exhibition.ID), payload, availabilityCacheTTL)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, availability)
}

func CreateExhibition(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateExhibitionInput)

	db := database.DB

	slug := input.Slug
	if slug == "" {
		slug = helper.GenerateUniqueExhibitionSlug(db, input.Title)
	}

	published := false
	if input.Published != nil {
		published = *input.Published
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	exhibition := model.Exhibition{
		Title:            input.Title,
		Slug:             slug,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Capacity:         input.Capacity,
		Curator:          input.Curator,
		Published:        &published,
		Active:           &active,
		LocationId:       input.LocationId,
	}

	if err := db.Create(&exhibition).Error; err != nil {
		// The slug carries a unique index, so a duplicate (including one
		// racing past any earlier lookup) surfaces here as a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict,
				constants.SLUG_ALREADY_EXISTS, err, "slug")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	db.Preload("Location").First(&exhibition, exhibition.ID)
	exhibition.RemainingSeats = exhibition.Capacity

	return utils.SuccessResponse(c, fiber.StatusCreated, exhibition)
}

func EditExhibition(c *fiber.Ctx) error {
	input := c.Locals("input").(model.EditExhibitionInput)
	exhibitionId := c.Locals("inputId").(int)

	db := database.DB
	var exhibition model.Exhibition
	if err := db.First(&exhibition, exhibitionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXHIBITION_NOT_FOUND, err)
	}

	if err := copier.CopyWithOption(&exhibition, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if exhibition.EndDate.Time.Before(exhibition.StartDate.Time) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
			"End date must not be before start date", errors.New("invalid date range"), "endDate")
	}

	// Capacity may not shrink below seats already reserved. The check and
	// the save run under the exhibition lock so a racing reservation
	// cannot land in between.
	if input.Capacity != nil {
		reserved, err := helper.SaveExhibitionWithCapacity(db, &exhibition)
		if err != nil {
			if errors.Is(err, helper.ErrCapacityBelowReserved) {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
					fmt.Sprintf("Capacity cannot drop below the %d seats already reserved", reserved),
					err, "capacity")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	} else if err := db.Save(&exhibition).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	invalidateAvailabilityCache(exhibition.ID)

	db.Preload("Location").Preload("Media").First(&exhibition, exhibition.ID)
	if err := attachRemainingSeats(db, &exhibition); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exhibition)
}

func DeleteExhibition(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	input := c.Locals("deleteIds").(model.ArrayId)

	db := database.DB

	// Exhibitions with live registrations cannot be removed.
	var count int64
	db.Model(&model.Registration{}).Where("exhibition_id IN ?", input.IDs).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict,
			"Exhibition still has active registrations", errors.New("exhibition referenced"))
	}

	if err := db.Delete(&model.Exhibition{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for _, id := range input.IDs {
		invalidateAvailabilityCache(id)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}
