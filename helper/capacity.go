package helper

import (
	"errors"
	"sync"

	"exhibition_manager/model"

	"gorm.io/gorm"
)

var (
	ErrCapacityExceeded      = errors.New("requested tickets exceed remaining capacity")
	ErrAlreadyRegistered     = errors.New("user already holds a registration for this exhibition")
	ErrCapacityBelowReserved = errors.New("capacity below reserved seats")
)

// Per-exhibition mutexes. Reservation must be serialized per exhibition,
// never globally, so contention stays scoped to the exhibition being booked.
var exhibitionLocks sync.Map

func lockExhibition(exhibitionId uint) *sync.Mutex {
	mu, _ := exhibitionLocks.LoadOrStore(exhibitionId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ReservedSeats sums the ticket counts of all non-cancelled registrations.
// Cancelled registrations are soft-deleted and excluded automatically.
func ReservedSeats(db *gorm.DB, exhibitionId uint) (int, error) {
	var reserved int64
	err := db.Model(&model.Registration{}).
		Where("exhibition_id = ?", exhibitionId).
		Select("COALESCE(SUM(ticket_count), 0)").
		Scan(&reserved).Error
	return int(reserved), err
}

// RemainingSeats reports capacity minus reserved seats, clamped at zero.
func RemainingSeats(db *gorm.DB, exhibition *model.Exhibition) (int, error) {
	reserved, err := ReservedSeats(db, exhibition.ID)
	if err != nil {
		return 0, err
	}
	remaining := exhibition.Capacity - reserved
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ReserveRegistration runs the capacity check and the registration insert
// as one critical section per exhibition, inside a transaction. Two racing
// requests can never both claim the last seats: the loser sees the updated
// sum and gets ErrCapacityExceeded with the seats that are still left.
// The duplicate-user guard lives in the same critical section, and the
// capacity is re-read so concurrent capacity edits are honored.
func ReserveRegistration(db *gorm.DB, exhibition *model.Exhibition, registration *model.Registration) (int, error) {
	mu := lockExhibition(exhibition.ID)
	mu.Lock()
	defer mu.Unlock()

	var remaining int
	err := db.Transaction(func(tx *gorm.DB) error {
		var current model.Exhibition
		if err := tx.First(&current, exhibition.ID).Error; err != nil {
			return err
		}

		var existing int64
		err := tx.Model(&model.Registration{}).
			Where("user_id = ? AND exhibition_id = ?", registration.UserId, registration.ExhibitionId).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		left, err := RemainingSeats(tx, &current)
		if err != nil {
			return err
		}
		if registration.TicketCount > left {
			remaining = left
			return ErrCapacityExceeded
		}
		if err := tx.Create(registration).Error; err != nil {
			return err
		}
		remaining = left - registration.TicketCount
		return nil
	})
	return remaining, err
}

// ReleaseRegistration cancels a registration and returns its seats to the
// pool. Soft delete keeps the row for auditing while excluding it from
// every capacity sum.
func ReleaseRegistration(db *gorm.DB, registration *model.Registration) error {
	mu := lockExhibition(registration.ExhibitionId)
	mu.Lock()
	defer mu.Unlock()

	return db.Delete(registration).Error
}

// SaveExhibitionWithCapacity persists an edited exhibition under the same
// per-exhibition lock the reservations use, so a capacity shrink can never
// interleave with a racing reservation and leave more seats reserved than
// the exhibition holds. Returns the reserved count alongside the error so
// callers can report how low the capacity may go.
func SaveExhibitionWithCapacity(db *gorm.DB, exhibition *model.Exhibition) (int, error) {
	mu := lockExhibition(exhibition.ID)
	mu.Lock()
	defer mu.Unlock()

	var reserved int
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		reserved, err = ReservedSeats(tx, exhibition.ID)
		if err != nil {
			return err
		}
		if exhibition.Capacity < reserved {
			return ErrCapacityBelowReserved
		}
		return tx.Save(exhibition).Error
	})
	return reserved, err
}
