package services

import (
	"seat-lock-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type SessionServiceMock struct {
	mock.Mock
}

func NewSessionServiceMock() *SessionServiceMock {
	return &SessionServiceMock{}
}

func (m *SessionServiceMock) Generate() (*model.LockSession, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LockSession), args.Error(1)
}

func (m *SessionServiceMock) Decode(transportToken string) (string, error) {
	args := m.Called(transportToken)
	return args.String(0), args.Error(1)
}
