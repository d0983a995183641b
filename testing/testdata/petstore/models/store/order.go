package store

// OrderStatus tracks fulfillment of a purchase.
type OrderStatus int

const (
	OrderPlaced OrderStatus = iota + 1
	OrderApproved
	OrderDelivered
)

// Order is one purchase of a pet.
type Order struct {
	ID       int64       `json:"id"`
	PetID    int64       `json:"pet_id"`
	Quantity int         `json:"quantity"`
	Status   OrderStatus `json:"status"`
	Complete bool        `json:"complete"`
}
