package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/ports"
)

// MockTicketStore is a testify mock of ports.TicketStore.
type MockTicketStore struct {
	mock.Mock
}

var _ ports.TicketStore = (*MockTicketStore)(nil)

func NewMockTicketStore() *MockTicketStore {
	return &MockTicketStore{}
}

func (m *MockTicketStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTicketStore) Tickets(ctx context.Context, q ports.TicketQuery) ([]domain.Ticket, error) {
	args := m.Called(ctx, q)
	if tickets, ok := args.Get(0).([]domain.Ticket); ok {
		return tickets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketStore) Assignments(ctx context.Context, q ports.AssignmentQuery) ([]domain.Assignment, error) {
	args := m.Called(ctx, q)
	if assignments, ok := args.Get(0).([]domain.Assignment); ok {
		return assignments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketStore) Surveys(ctx context.Context, q ports.SurveyQuery) ([]domain.SatisfactionSurvey, error) {
	args := m.Called(ctx, q)
	if surveys, ok := args.Get(0).([]domain.SatisfactionSurvey); ok {
		return surveys, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSnapshotService is a testify mock of ports.SnapshotService.
type MockSnapshotService struct {
	mock.Mock
}

var _ ports.SnapshotService = (*MockSnapshotService)(nil)

func NewMockSnapshotService() *MockSnapshotService {
	return &MockSnapshotService{}
}

func (m *MockSnapshotService) BuildSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*domain.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}
