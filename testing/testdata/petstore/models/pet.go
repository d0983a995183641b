package models

// Status is the adoption state of a pet.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// Pet is one animal listed by the store.
type Pet struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Status     Status            `json:"status"`
	Owner      *Owner            `json:"owner"`
	Attributes map[string]string `json:"attributes"`

	internalNote string
}

// Owner holds the adopter contact details.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PetList is the collection shape returned by list endpoints.
type PetList []Pet

// NewPet is the request payload for creating a pet.
type NewPet struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}
