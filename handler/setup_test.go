package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"exhibition_manager/database"
	"exhibition_manager/helper"
	"exhibition_manager/model"
	"exhibition_manager/router"
	"exhibition_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.Migrate(db)
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app
}

func createUser(t *testing.T, email string, admin bool) (model.User, string) {
	t.Helper()

	hash, err := helper.HashPassword("password123")
	require.NoError(t, err)

	user := model.User{
		Email:    email,
		Password: hash,
		FullName: "Test User",
		Admin:    admin,
		Active:   utils.Ptr(true),
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Email: user.Email})
	require.NoError(t, err)

	return user, token
}

func createExhibition(t *testing.T, capacity int, start, end time.Time, published, active bool) model.Exhibition {
	t.Helper()

	location := model.Location{Name: "Test Gallery", City: "Belgrade", Address: "Trg Republike 1a"}
	require.NoError(t, database.DB.Create(&location).Error)

	exhibition := model.Exhibition{
		Title:      "Test Exhibition",
		Slug:       fmt.Sprintf("test-exhibition-%d", time.Now().UnixNano()),
		StartDate:  utils.CustomDate{Time: start},
		EndDate:    utils.CustomDate{Time: end},
		Capacity:   capacity,
		Published:  utils.Ptr(published),
		Active:     utils.Ptr(active),
		LocationId: location.ID,
	}
	require.NoError(t, database.DB.Create(&exhibition).Error)
	return exhibition
}

func doRequest(t *testing.T, app *fiber.App, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		reader = &buf
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}

func dataField(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got: %v", body)
	return data
}
