package services

import (
	"context"
	"seat-lock-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type SeatLockServiceMock struct {
	mock.Mock
}

func NewSeatLockServiceMock() *SeatLockServiceMock {
	return &SeatLockServiceMock{}
}

func (m *SeatLockServiceMock) LockSeats(ctx context.Context, req model.LockSeatsRequest) (*model.LockSeatsResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LockSeatsResult), args.Error(1)
}

func (m *SeatLockServiceMock) ReleaseSeats(ctx context.Context, eventID int, seats []model.SeatRef, sessionID string) (int, error) {
	args := m.Called(ctx, eventID, seats, sessionID)
	return args.Int(0), args.Error(1)
}
