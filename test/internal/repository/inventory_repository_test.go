package repository

import (
	"context"
	"seat-lock-service/internal/repository"
	apperrors "seat-lock-service/pkg/app_errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryRepository_IsSeatUnavailable(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewInventoryRepository(getTestDB())

	t.Run("Available - NoBooking", func(t *testing.T) {
		unavailable, err := repo.IsSeatUnavailable(ctx, 7, 12)
		assert.NoError(t, err)
		assert.False(t, unavailable)
	})

	t.Run("Unavailable - ConfirmedBooking", func(t *testing.T) {
		createTestBooking(t, 7, 13, "confirmed")

		unavailable, err := repo.IsSeatUnavailable(ctx, 7, 13)
		assert.NoError(t, err)
		assert.True(t, unavailable)
	})

	t.Run("Unavailable - PendingBooking", func(t *testing.T) {
		createTestBooking(t, 7, 14, "pending")

		unavailable, err := repo.IsSeatUnavailable(ctx, 7, 14)
		assert.NoError(t, err)
		assert.True(t, unavailable)
	})

	t.Run("Available - CancelledBooking", func(t *testing.T) {
		createTestBooking(t, 7, 15, "cancelled")

		unavailable, err := repo.IsSeatUnavailable(ctx, 7, 15)
		assert.NoError(t, err)
		assert.False(t, unavailable)
	})

	t.Run("Available - OtherEvent", func(t *testing.T) {
		createTestBooking(t, 8, 16, "confirmed")

		// 同座位編號、不同活動，互不影響
		unavailable, err := repo.IsSeatUnavailable(ctx, 7, 16)
		assert.NoError(t, err)
		assert.False(t, unavailable)
	})
}

func TestInventoryRepository_RemainingCount(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewInventoryRepository(getTestDB())

	t.Run("ReturnsCount", func(t *testing.T) {
		remaining := 25
		createTestTicketClass(t, 7, "ga-floor", &remaining)

		count, err := repo.RemainingCount(ctx, 7, "ga-floor")
		assert.NoError(t, err)
		if assert.NotNil(t, count) {
			assert.Equal(t, 25, *count)
		}
	})

	t.Run("NullMeansUnlimited", func(t *testing.T) {
		createTestTicketClass(t, 7, "ga-lawn", nil)

		count, err := repo.RemainingCount(ctx, 7, "ga-lawn")
		assert.NoError(t, err)
		assert.Nil(t, count)
	})

	t.Run("Failed - UnknownClass", func(t *testing.T) {
		count, err := repo.RemainingCount(ctx, 7, "no-such-class")
		assert.ErrorIs(t, err, apperrors.ErrTicketClassNotFound)
		assert.Nil(t, count)
	})
}
