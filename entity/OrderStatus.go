package entity

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusAccepted  OrderStatus = "ACCEPTED"
	StatusRejected  OrderStatus = "REJECTED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
)

// OrderStatuses lists the vocabulary in pipeline order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}
