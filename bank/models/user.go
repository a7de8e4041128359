package models

// User is the registered profile. It lives only for the duration of the
// session and is destroyed at logout.
type User struct {
	Phone      string `json:"phone"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	IsPremium  bool   `json:"is_premium"`
}

// Session is a snapshot of the authentication state returned by session
// operations.
type Session struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// PremiumPackage selects the bonus card granted at premium activation.
// The empty value means activation without a bonus card.
type PremiumPackage string

const (
	PackageNone     PremiumPackage = ""
	PackageGold     PremiumPackage = "gold"
	PackagePlatinum PremiumPackage = "platinum"
)

func (p PremiumPackage) Valid() bool {
	switch p {
	case PackageNone, PackageGold, PackagePlatinum:
		return true
	}
	return false
}
