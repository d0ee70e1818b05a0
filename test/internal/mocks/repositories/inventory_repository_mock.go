package repositories

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type InventoryRepositoryMock struct {
	mock.Mock
}

func NewInventoryRepositoryMock() *InventoryRepositoryMock {
	return &InventoryRepositoryMock{}
}

func (m *InventoryRepositoryMock) IsSeatUnavailable(ctx context.Context, eventID int, seatID int) (bool, error) {
	args := m.Called(ctx, eventID, seatID)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepositoryMock) RemainingCount(ctx context.Context, eventID int, classRef string) (*int, error) {
	args := m.Called(ctx, eventID, classRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}
