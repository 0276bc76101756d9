package helper

import (
	"errors"
	"time"

	"exhibition_manager/model"

	"gorm.io/gorm"
)

var (
	ErrTokenNotFound    = errors.New("no registration carries this token")
	ErrAlreadyValidated = errors.New("ticket already validated")
)

// RedeemToken flips the validated flag exactly once. The conditional
// UPDATE (validated = false in the WHERE clause) is a single statement,
// so of two concurrent scans only one can see RowsAffected == 1.
func RedeemToken(db *gorm.DB, token string) (*model.Registration, error) {
	now := time.Now()
	res := db.Model(&model.Registration{}).
		Where("redemption_token = ? AND validated = ?", token, false).
		Updates(map[string]interface{}{"validated": true, "validated_at": now})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&model.Registration{}).
			Where("redemption_token = ?", token).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrTokenNotFound
		}
		return nil, ErrAlreadyValidated
	}

	var registration model.Registration
	if err := db.Preload("Exhibition").Preload("Exhibition.Location").Preload("User").
		Where("redemption_token = ?", token).
		First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}
