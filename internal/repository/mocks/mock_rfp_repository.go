package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rfpapi/internal/model"
)

type MockRFPRepository struct {
	mock.Mock
}

func (m *MockRFPRepository) Create(ctx context.Context, rfp *model.RFP) (*model.RFP, error) {
	args := m.Called(ctx, rfp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RFP), args.Error(1)
}

func (m *MockRFPRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.RFP, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RFP), args.Error(1)
}

func (m *MockRFPRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.RFP, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RFP), args.Error(1)
}

func (m *MockRFPRepository) UpdateDraft(ctx context.Context, id, ownerID int64, draft string) error {
	args := m.Called(ctx, id, ownerID, draft)
	return args.Error(0)
}

func (m *MockRFPRepository) UpdateEditable(ctx context.Context, rfp *model.RFP) error {
	args := m.Called(ctx, rfp)
	return args.Error(0)
}
