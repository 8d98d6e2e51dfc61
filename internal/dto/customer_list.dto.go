package dto

// CustomerSimpleDTO is the lightweight projection used by dropdown and
// picker UIs, where enrichment cost is wasted.
type CustomerSimpleDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
