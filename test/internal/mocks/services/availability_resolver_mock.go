package services

import (
	"context"
	"seat-lock-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type SeatAvailabilityResolverMock struct {
	mock.Mock
}

func NewSeatAvailabilityResolverMock() *SeatAvailabilityResolverMock {
	return &SeatAvailabilityResolverMock{}
}

func (m *SeatAvailabilityResolverMock) IsAvailable(ctx context.Context, seat model.SeatRef, eventID int, sessionID string) (bool, error) {
	args := m.Called(ctx, seat, eventID, sessionID)
	return args.Bool(0), args.Error(1)
}
