package models

// Family is a shared-code group. Joining by code is accepted client-side
// with no existence check; OwnerPhone is empty for joined families.
type Family struct {
	Code       string   `json:"code"`
	OwnerPhone string   `json:"owner_phone,omitempty"`
	Members    []string `json:"members"`
}

// Friend is a linked contact in the roster. It carries no relationship to
// cards or balances beyond display.
type Friend struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
