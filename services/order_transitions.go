// services/order_transitions.go
package services

import (
	"strings"

	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"
)

// transitions is the fulfilment pipeline. It is only enforced when
// OrderService.StrictTransitions is set; by default an owner may set any status.
var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusPending:   {entity.StatusAccepted, entity.StatusRejected},
	entity.StatusAccepted:  {entity.StatusPreparing},
	entity.StatusPreparing: {entity.StatusReady},
	entity.StatusReady:     {entity.StatusDelivered},
}

// ParseOrderStatus accepts any case and surrounding blanks.
func ParseOrderStatus(s string) (entity.OrderStatus, error) {
	st := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", apperr.BusinessRule("unknown order status %q", s)
	}
	return st, nil
}

func CanTransition(from, to entity.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
