package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	id := uuid.MustParse("6f1a3c1e-6a43-4d1b-9e38-8a2f0a4c0d11")
	err := NewNotFoundError(EntityProduct, id)

	assert.Equal(t, "product 6f1a3c1e-6a43-4d1b-9e38-8a2f0a4c0d11 not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("create invoice: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var nf *NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, EntityProduct, nf.Entity)
	assert.Equal(t, id, nf.ID)
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		entity Entity
		want   bool
	}{
		{name: "nil", err: nil, entity: EntityUser, want: false},
		{name: "generic", err: errors.New("boom"), entity: EntityUser, want: false},
		{name: "matching entity", err: NewNotFoundError(EntityUser, uuid.New()), entity: EntityUser, want: true},
		{name: "other entity", err: NewNotFoundError(EntityInvoice, uuid.New()), entity: EntityUser, want: false},
		{
			name:   "wrapped",
			err:    fmt.Errorf("outer: %w", NewNotFoundError(EntityInvoice, uuid.New())),
			entity: EntityInvoice,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err, tt.entity))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("products", "cannot be empty", ErrValidation)

	assert.Equal(t, "products cannot be empty", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
