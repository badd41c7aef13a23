package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) LookupByBarcode(ctx context.Context, barcode string) (domain.Product, error) {
	args := m.Called(ctx, barcode)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductLookup) SearchByName(ctx context.Context, query string) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
