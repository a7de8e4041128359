package models

// Request payloads shared by the HTTP API and the client.

type RegisterRequest struct {
	Phone      string `json:"phone"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
}

type ActivatePremiumRequest struct {
	Package PremiumPackage `json:"package,omitempty"`
}

type IssueCardRequest struct {
	Category      CardCategory  `json:"category"`
	Type          CardType      `json:"type"`
	PaymentSystem PaymentSystem `json:"payment_system,omitempty"`
}

type CreditRequest struct {
	CardID string `json:"card_id"`
	Amount int64  `json:"amount"`
}

type TransferRequest struct {
	FromCardID string `json:"from_card_id"`
	ToCardID   string `json:"to_card_id"`
	Amount     int64  `json:"amount"`
}

type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

type RenameRequest struct {
	Name string `json:"name"`
}

type LimitsRequest struct {
	DailyLimit   int64 `json:"daily_limit"`
	MonthlyLimit int64 `json:"monthly_limit"`
}

type JoinFamilyRequest struct {
	Code string `json:"code"`
}

type AddFriendRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type TotalBalanceResponse struct {
	TotalBalance int64 `json:"total_balance"`
}
