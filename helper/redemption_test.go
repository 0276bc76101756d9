package helper

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemToken_UnknownToken(t *testing.T) {
	db := setupTestDB(t)
	seedExhibition(t, db, 10)

	_, err := RedeemToken(db, "REG-unknown")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedeemToken_ExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	registration := newRegistration(exhibition.ID, 1, 2)
	_, err := ReserveRegistration(db, exhibition, registration)
	require.NoError(t, err)

	redeemed, err := RedeemToken(db, registration.RedemptionToken)
	require.NoError(t, err)
	assert.True(t, redeemed.Validated)
	assert.NotNil(t, redeemed.ValidatedAt)
	assert.Equal(t, exhibition.ID, redeemed.Exhibition.ID)

	_, err = RedeemToken(db, registration.RedemptionToken)
	assert.ErrorIs(t, err, ErrAlreadyValidated)
}

func TestRedeemToken_ConcurrentScans(t *testing.T) {
	db := setupTestDB(t)
	exhibition := seedExhibition(t, db, 10)

	registration := newRegistration(exhibition.ID, 1, 1)
	_, err := ReserveRegistration(db, exhibition, registration)
	require.NoError(t, err)

	const scans = 8
	var wg sync.WaitGroup
	var successes, replays int32

	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := RedeemToken(db, registration.RedemptionToken)
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case err == ErrAlreadyValidated:
				atomic.AddInt32(&replays, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes, "exactly one scan wins")
	assert.Equal(t, int32(scans-1), replays)
}
