package services

import (
	"testing"

	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    entity.OrderStatus
		wantErr bool
	}{
		{"PENDING", entity.StatusPending, false},
		{"accepted", entity.StatusAccepted, false},
		{"  Ready ", entity.StatusReady, false},
		{"DELIVERED", entity.StatusDelivered, false},
		{"", "", true},
		{"SHIPPED", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOrderStatus(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperr.ErrBusinessRule)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(entity.StatusPending, entity.StatusAccepted))
	assert.True(t, CanTransition(entity.StatusPending, entity.StatusRejected))
	assert.True(t, CanTransition(entity.StatusReady, entity.StatusDelivered))

	assert.False(t, CanTransition(entity.StatusPending, entity.StatusDelivered))
	assert.False(t, CanTransition(entity.StatusRejected, entity.StatusAccepted))
	assert.False(t, CanTransition(entity.StatusDelivered, entity.StatusPending))
}
