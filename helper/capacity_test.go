package helper

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"exhibition_manager/database"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps sqlite write transactions strictly serialized.
	sqlDB.SetMaxOpenConns(1)

	database.Migrate(db)
	return db
}

func seedExhibition(t *testing.T, db *gorm.DB, capacity int) *model.Exhibition {
	t.Helper()

	location := model.Location{Name: "Test Gallery", City: "Belgrade"}
	require.NoError(t, db.Create(&location).Error)

	now := time.Now()
	exhibition := model.Exhibition{
		Title:      "Test Exhibition",
		Slug:       fmt.Sprintf("test-exhibition-%d", now.UnixNano()),
		StartDate:  utils.CustomDate{Time: now.AddDate(0, 0, -1)},
		EndDate:    utils.CustomDate{Time: now.AddDate(0, 0, 30)},
		Capacity:   capacity,
		Published:  utils.Ptr(true),
		Active:     utils.Ptr(true),
		LocationId: location.ID,
	}
	require.NoError(t, db.Create(&exhibition).Error)
	return &exhibition
}

func newRegistration(exhibitionId, userId uint, tickets int) *model.Registration {
	return &model.Registration{
		ExhibitionId:    exhibitionId,
		UserId:          userId,
		TicketCount:     tickets,
		RedemptionToken: MintRedemptionToken(),
	}
}

func TestReserveRegistration_RejectsOverCapacity(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	_, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 7))
	require.NoError(t, err)

	left, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 2, 5))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 3, left, "loser learns the seats still available")

	left, err = ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	remaining, err := RemainingSeats(db, exhibition)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestReserveRegistration_FailedReserveLeavesNoRow(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 2)

	_, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 5))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	reserved, err := ReservedSeats(db, exhibition.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reserved)
}

func TestReserveRegistration_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	const capacity = 5
	const requests = 12
	exhibition := seedExhibition(t, db, capacity)

	var wg sync.WaitGroup
	var successes, soldOut int32

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(userId uint) {
			defer wg.Done()
			_, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, userId, 1))
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case err == ErrCapacityExceeded:
				atomic.AddInt32(&soldOut, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uint(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int32(capacity), successes)
	assert.Equal(t, int32(requests-capacity), soldOut)

	reserved, err := ReservedSeats(db, exhibition.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, reserved, "reservations never exceed capacity")
}

func TestReserveRegistration_SameUserTwice(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	first := newRegistration(exhibition.ID, 1, 2)
	_, err := ReserveRegistration(db, exhibition, first)
	require.NoError(t, err)

	_, err = ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 1))
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	reserved, err := ReservedSeats(db, exhibition.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reserved)

	// Cancelling frees the user to register again.
	require.NoError(t, ReleaseRegistration(db, first))
	_, err = ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 3))
	assert.NoError(t, err)
}

func TestReserveRegistration_ConcurrentSameUser(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	const attempts = 6
	var wg sync.WaitGroup
	var successes, duplicates int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 1))
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case err == ErrAlreadyRegistered:
				atomic.AddInt32(&duplicates, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes, "one registration per user per exhibition")
	assert.Equal(t, int32(attempts-1), duplicates)

	reserved, err := ReservedSeats(db, exhibition.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reserved)
}

func TestSaveExhibitionWithCapacity_RefusesShrinkBelowReserved(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	_, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 6))
	require.NoError(t, err)

	exhibition.Capacity = 4
	reserved, err := SaveExhibitionWithCapacity(db, exhibition)
	assert.ErrorIs(t, err, ErrCapacityBelowReserved)
	assert.Equal(t, 6, reserved)

	exhibition.Capacity = 6
	_, err = SaveExhibitionWithCapacity(db, exhibition)
	assert.NoError(t, err)
}

func TestCapacityShrink_NeverRacesBelowReservations(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	var wg sync.WaitGroup
	var successes int32

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 6))
		if err == nil {
			atomic.AddInt32(&successes, 1)
		} else if err != ErrCapacityExceeded {
			t.Errorf("unexpected reserve error: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		shrunk := *exhibition
		shrunk.Capacity = 4
		_, err := SaveExhibitionWithCapacity(db, &shrunk)
		if err == nil {
			atomic.AddInt32(&successes, 1)
		} else if err != ErrCapacityBelowReserved {
			t.Errorf("unexpected shrink error: %v", err)
		}
	}()
	wg.Wait()

	// Whichever side ran first wins; the other must have been refused.
	assert.Equal(t, int32(1), successes)

	var current model.Exhibition
	require.NoError(t, db.First(&current, exhibition.ID).Error)
	reserved, err := ReservedSeats(db, exhibition.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, reserved, current.Capacity, "reservations never exceed capacity")
}

func TestReleaseRegistration_ReturnsCapacity(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	registration := newRegistration(exhibition.ID, 1, 4)
	_, err := ReserveRegistration(db, exhibition, registration)
	require.NoError(t, err)

	remaining, err := RemainingSeats(db, exhibition)
	require.NoError(t, err)
	assert.Equal(t, 6, remaining)

	require.NoError(t, ReleaseRegistration(db, registration))

	remaining, err = RemainingSeats(db, exhibition)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)

	// The freed seats are immediately reservable again.
	_, err = ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 2, 10))
	assert.NoError(t, err)
}

func TestRemainingSeats_ClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 5)

	_, err := ReserveRegistration(db, exhibition, newRegistration(exhibition.ID, 1, 5))
	require.NoError(t, err)

	// Shrink capacity under the reserved sum; remaining must clamp, not go negative.
	require.NoError(t, db.Model(exhibition).Update("capacity", 3).Error)
	exhibition.Capacity = 3

	remaining, err := RemainingSeats(db, exhibition)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}
