package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rfpapi/internal/model"
	"rfpapi/internal/service"
)

type MockRFPService struct {
	mock.Mock
}

func (m *MockRFPService) Upload(ctx context.Context, ownerID int64, title string, r io.Reader, originalFilename string, contentType string, size int64) (*model.RFP, error) {
	args := m.Called(ctx, ownerID, title, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RFP), args.Error(1)
}

func (m *MockRFPService) List(ctx context.Context, ownerID int64) ([]model.RFP, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RFP), args.Error(1)
}

func (m *MockRFPService) Get(ctx context.Context, ownerID, id int64) (*model.RFP, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RFP), args.Error(1)
}

func (m *MockRFPService) GenerateDraft(ctx context.Context, ownerID, id int64) (*model.RFP, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RFP), args.Error(1)
}

func (m *MockRFPService) Update(ctx context.Context, ownerID, id int64, in service.UpdateRFPInput) (*model.RFP, error) {
	args := m.Called(ctx, ownerID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RFP), args.Error(1)
}
