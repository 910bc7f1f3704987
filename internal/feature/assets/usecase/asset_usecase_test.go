package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAssetRepository is a test implementation of AssetRepository.
type mockAssetRepository struct {
	existsFn func(ctx context.Context, symbol, network string) (bool, error)
	listFn   func(ctx context.Context, network string) ([]string, error)
}

func (m *mockAssetRepository) ExistsActive(ctx context.Context, symbol, network string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, symbol, network)
	}
	return false, nil
}

func (m *mockAssetRepository) ListActiveSymbols(ctx context.Context, network string) ([]string, error) {
	if m.listFn != nil {
		return m.listFn(ctx, network)
	}
	return nil, nil
}

// TestAssetUsecase_IsKnownSymbol verifies delegation and error passthrough.
func TestAssetUsecase_IsKnownSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existsFn func(ctx context.Context, symbol, network string) (bool, error)
		expected bool
		wantErr  bool
	}{
		{
			name: "known symbol",
			existsFn: func(ctx context.Context, symbol, network string) (bool, error) {
				return true, nil
			},
			expected: true,
		},
		{
			name: "unknown symbol",
			existsFn: func(ctx context.Context, symbol, network string) (bool, error) {
				return false, nil
			},
			expected: false,
		},
		{
			name: "repository failure",
			existsFn: func(ctx context.Context, symbol, network string) (bool, error) {
				return false, errors.New("db unreachable")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := NewAssetUsecase(&mockAssetRepository{existsFn: tt.existsFn})

			known, err := uc.IsKnownSymbol(context.Background(), "CLB", "mainnet")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, known)
		})
	}
}

// TestAssetUsecase_ListActiveSymbols verifies delegation.
func TestAssetUsecase_ListActiveSymbols(t *testing.T) {
	t.Parallel()

	uc := NewAssetUsecase(&mockAssetRepository{
		listFn: func(ctx context.Context, network string) ([]string, error) {
			return []string{"CLB", "NAV"}, nil
		},
	})

	symbols, err := uc.ListActiveSymbols(context.Background(), "mainnet")

	require.NoError(t, err)
	assert.Equal(t, []string{"CLB", "NAV"}, symbols)
}
