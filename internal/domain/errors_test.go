package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-stock-service/internal/domain"
)

func TestInsufficientStockError_Unwrap(t *testing.T) {
	err := fmt.Errorf("decrease: %w", &domain.InsufficientStockError{Available: 3, Requested: 10})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	assert.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 10, insufficient.Requested)
}
