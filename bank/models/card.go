package models

// CardType distinguishes virtual cards from plastic ones.
type CardType string

const (
	CardTypeVirtual CardType = "virtual"
	CardTypePlastic CardType = "plastic"
)

func (t CardType) Valid() bool {
	switch t {
	case CardTypeVirtual, CardTypePlastic:
		return true
	}
	return false
}

// CardCategory is the card product line. Premium and super-credit are
// available to premium accounts only.
type CardCategory string

const (
	CategoryChildDebit  CardCategory = "child-debit"
	CategoryYouthDebit  CardCategory = "youth-debit"
	CategoryCredit      CardCategory = "credit"
	CategorySticker     CardCategory = "sticker"
	CategoryPremium     CardCategory = "premium"
	CategorySuperCredit CardCategory = "super-credit"
)

func (c CardCategory) Valid() bool {
	switch c {
	case CategoryChildDebit, CategoryYouthDebit, CategoryCredit,
		CategorySticker, CategoryPremium, CategorySuperCredit:
		return true
	}
	return false
}

// PremiumOnly reports whether the category is gated behind the premium plan.
func (c CardCategory) PremiumOnly() bool {
	return c == CategoryPremium || c == CategorySuperCredit
}

// DisplayName is the default card label shown to the user; the user can
// rename the card afterwards.
func (c CardCategory) DisplayName() string {
	switch c {
	case CategoryChildDebit:
		return "Child debit"
	case CategoryYouthDebit:
		return "Youth"
	case CategoryCredit:
		return "Credit"
	case CategorySticker:
		return "Sticker"
	case CategoryPremium:
		return "Premium"
	case CategorySuperCredit:
		return "Super credit"
	}
	return string(c)
}

// DefaultLimits returns the daily and monthly spending limits assigned at
// issuance. Super-credit cards get the top-tier limits.
func (c CardCategory) DefaultLimits() (daily, monthly int64) {
	if c == CategorySuperCredit {
		return 500_000, 2_000_000
	}
	return 50_000, 200_000
}

// PaymentSystem is the payment network a card belongs to.
type PaymentSystem string

const (
	Visa       PaymentSystem = "visa"
	MasterCard PaymentSystem = "mastercard"
	MIR        PaymentSystem = "mir"
	MIR2       PaymentSystem = "mir-2"
	UnionPay   PaymentSystem = "unionpay"
	VisaPlus   PaymentSystem = "visa-plus"
)

func (p PaymentSystem) Valid() bool {
	switch p {
	case Visa, MasterCard, MIR, MIR2, UnionPay, VisaPlus:
		return true
	}
	return false
}

// Prefix returns the fixed card-number prefix for the network.
func (p PaymentSystem) Prefix() string {
	switch p {
	case Visa:
		return "4"
	case MasterCard:
		return "5"
	case MIR:
		return "220"
	case MIR2:
		return "221"
	case UnionPay:
		return "62"
	case VisaPlus:
		return "4"
	}
	return ""
}

// BankCard is a card record held in the session ledger. Number is the full
// 16-digit number grouped in blocks of four; MaskedNumber is the form safe
// for list rendering.
type BankCard struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Category      CardCategory  `json:"category"`
	Type          CardType      `json:"type"`
	Number        string        `json:"number"`
	MaskedNumber  string        `json:"masked_number"`
	Balance       int64         `json:"balance"`
	IsBlocked     bool          `json:"is_blocked"`
	PaymentSystem PaymentSystem `json:"payment_system"`
	CVV           string        `json:"cvv"`
	ExpiryDate    string        `json:"expiry_date"`
	DailyLimit    int64         `json:"daily_limit"`
	MonthlyLimit  int64         `json:"monthly_limit"`
}
