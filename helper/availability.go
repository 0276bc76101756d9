package helper

import (
	"errors"
	"time"

	"exhibition_manager/constants"
	"exhibition_manager/model"
)

var ErrInvalidDateRange = errors.New("end date is before start date")

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EvaluateAvailability derives the temporal state and bookability of an
// exhibition. Pure: callers supply "now" and the already-computed remaining
// seat count. Both start and end date are inclusive.
func EvaluateAvailability(now time.Time, exhibition *model.Exhibition, remaining int) (model.Availability, error) {
	start := dateOnly(exhibition.StartDate.Time)
	end := dateOnly(exhibition.EndDate.Time)
	today := dateOnly(now)

	if end.Before(start) {
		return model.Availability{}, ErrInvalidDateRange
	}

	state := constants.ExhibitionActive
	if today.Before(start) {
		state = constants.ExhibitionUpcoming
	} else if today.After(end) {
		state = constants.ExhibitionEnded
	}

	published := exhibition.Published != nil && *exhibition.Published
	active := exhibition.Active != nil && *exhibition.Active

	bookable := state != constants.ExhibitionEnded &&
		published && active && remaining > 0

	return model.Availability{
		State:          state,
		Bookable:       bookable,
		RemainingSeats: remaining,
	}, nil
}
