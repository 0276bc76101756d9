package helper

import (
	"testing"
	"time"

	"exhibition_manager/constants"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"github.com/stretchr/testify/assert"
)

func exhibitionOn(start, end time.Time, published, active bool) *model.Exhibition {
	return &model.Exhibition{
		Title:     "Test Exhibition",
		StartDate: utils.CustomDate{Time: start},
		EndDate:   utils.CustomDate{Time: end},
		Capacity:  100,
		Published: utils.Ptr(published),
		Active:    utils.Ptr(active),
	}
}

func TestEvaluateAvailability_Ended(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, -10), now.AddDate(0, 0, -1), true, true)

	availability, err := EvaluateAvailability(now, ex, 50)

	assert.NoError(t, err)
	assert.Equal(t, constants.ExhibitionEnded, availability.State)
	assert.False(t, availability.Bookable)
	assert.Equal(t, 50, availability.RemainingSeats)
}

func TestEvaluateAvailability_ActiveSpanningToday(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, -5), now.AddDate(0, 0, 5), true, true)

	availability, err := EvaluateAvailability(now, ex, 10)

	assert.NoError(t, err)
	assert.Equal(t, constants.ExhibitionActive, availability.State)
	assert.True(t, availability.Bookable)
}

func TestEvaluateAvailability_EndDateInclusive(t *testing.T) {
	now := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, -5), now, true, true)

	availability, err := EvaluateAvailability(now, ex, 10)

	assert.NoError(t, err)
	assert.Equal(t, constants.ExhibitionActive, availability.State)
	assert.True(t, availability.Bookable)
}

func TestEvaluateAvailability_Upcoming(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, 1), now.AddDate(0, 0, 10), true, true)

	availability, err := EvaluateAvailability(now, ex, 10)

	assert.NoError(t, err)
	assert.Equal(t, constants.ExhibitionUpcoming, availability.State)
	assert.True(t, availability.Bookable, "upcoming exhibitions accept registrations")
}

func TestEvaluateAvailability_UnpublishedNotBookable(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, -1), now.AddDate(0, 0, 10), false, true)

	availability, err := EvaluateAvailability(now, ex, 10)

	assert.NoError(t, err)
	assert.False(t, availability.Bookable)
}

func TestEvaluateAvailability_InactiveNotBookable(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, -1), now.AddDate(0, 0, 10), true, false)

	availability, err := EvaluateAvailability(now, ex, 10)

	assert.NoError(t, err)
	assert.False(t, availability.Bookable)
}

func TestEvaluateAvailability_SoldOutNotBookable(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, -1), now.AddDate(0, 0, 10), true, true)

	availability, err := EvaluateAvailability(now, ex, 0)

	assert.NoError(t, err)
	assert.Equal(t, constants.ExhibitionActive, availability.State)
	assert.False(t, availability.Bookable)
}

func TestEvaluateAvailability_InvalidDateRange(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ex := exhibitionOn(now.AddDate(0, 0, 5), now.AddDate(0, 0, 1), true, true)

	_, err := EvaluateAvailability(now, ex, 10)

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
