package locks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type SeatLockManagerMock struct {
	mock.Mock
}

func NewSeatLockManagerMock() *SeatLockManagerMock {
	return &SeatLockManagerMock{}
}

func (m *SeatLockManagerMock) Inspect(ctx context.Context, eventID int, seatID int) (string, error) {
	args := m.Called(ctx, eventID, seatID)
	return args.String(0), args.Error(1)
}

func (m *SeatLockManagerMock) AcquireBatch(ctx context.Context, eventID int, seatIDs []int, sessionID string, ttl time.Duration) (bool, []int, error) {
	args := m.Called(ctx, eventID, seatIDs, sessionID, ttl)
	if args.Get(1) == nil {
		return args.Bool(0), nil, args.Error(2)
	}
	return args.Bool(0), args.Get(1).([]int), args.Error(2)
}

func (m *SeatLockManagerMock) Release(ctx context.Context, eventID int, seatIDs []int, sessionID string) (int, error) {
	args := m.Called(ctx, eventID, seatIDs, sessionID)
	return args.Int(0), args.Error(1)
}
