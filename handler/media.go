package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exhibition_manager/constants"
	"exhibition_manager/database"
	"exhibition_manager/helper"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// UploadExhibitionMedia pushes an image to Cloudinary and records its URL.
func UploadExhibitionMedia(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	exhibitionId := c.Locals("inputId").(int)

	db := database.DB
	var exhibition model.Exhibition
	if err := db.First(&exhibition, exhibitionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXHIBITION_NOT_FOUND, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing file field", err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot open uploaded file", err)
	}
	defer f.Close()

	cld := helper.InitCloudinary()
	uploadResult, err := cld.Upload.Upload(context.Background(), f, uploader.UploadParams{
		Folder:       "exhibitions",
		PublicID:     fmt.Sprintf("exhibition_%d_media_%d", exhibition.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload to Cloudinary failed", err)
	}

	media := model.ExhibitionMedia{
		ExhibitionId: exhibition.ID,
		Url:          uploadResult.SecureURL,
		Title:        c.FormValue("title", exhibition.Title),
		Cover:        c.FormValue("cover") == "true",
	}

	if err := db.Create(&media).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, media)
}

func DeleteExhibitionMedia(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	mediaId := c.Locals("inputId").(int)

	db := database.DB
	var media model.ExhibitionMedia
	if err := db.First(&media, mediaId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Media not found", err)
	}

	if err := db.Delete(&media).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": media.ID})
}
