package bank

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonanatree/yuganbank/bank/models"
	"github.com/jonanatree/yuganbank/internal/cardgen"
	"github.com/jonanatree/yuganbank/internal/expiry"
	"github.com/jonanatree/yuganbank/internal/familycode"
)

// premiumPackages are the bonus cards offered at premium activation.
// Exactly one is granted when the user picks a package.
var premiumPackages = map[models.PremiumPackage]struct {
	Category models.CardCategory
	System   models.PaymentSystem
	Balance  int64
}{
	models.PackageGold:     {Category: models.CategoryPremium, System: models.MasterCard, Balance: 2_000},
	models.PackagePlatinum: {Category: models.CategorySuperCredit, System: models.VisaPlus, Balance: 5_000},
}

// Service implements the session, card issuance, ledger and family
// operations over the in-memory repository. No operation besides Register
// is valid without an authenticated session.
type Service struct {
	repo *Repository
	cfg  *Config
	gen  *cardgen.Generator
	now  func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithRandom replaces the random byte source used for card numbers, CVVs,
// expiry months and family codes. Tests supply a deterministic reader.
func WithRandom(r io.Reader) Option {
	return func(s *Service) { s.gen = cardgen.New(r) }
}

// WithClock replaces the time source used for expiry dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo *Repository, cfg *Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Service{
		repo: repo,
		cfg:  cfg,
		gen:  cardgen.New(nil),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns a snapshot of the current authentication state.
func (s *Service) Session() models.Session {
	user := s.repo.User()
	return models.Session{Authenticated: user != nil, User: user}
}

func (s *Service) requireSession() (*models.User, error) {
	user := s.repo.User()
	if user == nil {
		return nil, ErrNoSession
	}
	return user, nil
}

// Register creates the session user and issues the starter card. All four
// fields are required; blanks fail validation. Registering over an active
// session is an error and leaves it untouched.
func (s *Service) Register(phone, firstName, lastName, middleName string) (models.Session, error) {
	if s.repo.User() != nil {
		return s.Session(), fmt.Errorf("session already active: %w", ErrValidation)
	}
	for _, field := range []string{phone, firstName, lastName, middleName} {
		if strings.TrimSpace(field) == "" {
			return s.Session(), fmt.Errorf("all fields are required: %w", ErrValidation)
		}
	}

	s.repo.SetUser(&models.User{
		Phone:      phone,
		FirstName:  firstName,
		LastName:   lastName,
		MiddleName: middleName,
	})

	_, err := s.createCard(s.cfg.StarterCategory, models.CardTypeVirtual, s.cfg.StarterPaymentSystem, s.cfg.WelcomeBonus)
	if err != nil {
		s.repo.Clear()
		return s.Session(), fmt.Errorf("issuing starter card: %w", err)
	}

	return s.Session(), nil
}

// ActivatePremium upgrades the session to the premium plan and grants the
// chosen bonus-card package, if any.
func (s *Service) ActivatePremium(pkg models.PremiumPackage) (models.Session, error) {
	if _, err := s.requireSession(); err != nil {
		return s.Session(), err
	}
	if !pkg.Valid() {
		return s.Session(), fmt.Errorf("unknown premium package %q: %w", pkg, ErrValidation)
	}

	if _, err := s.repo.SetPremium(true); err != nil {
		return s.Session(), err
	}
	if pkg != models.PackageNone {
		bonus := premiumPackages[pkg]
		if _, err := s.createCard(bonus.Category, models.CardTypeVirtual, bonus.System, bonus.Balance); err != nil {
			// Activation is all-or-nothing: a failed bonus grant must not
			// leave the account premium.
			s.repo.SetPremium(false)
			return s.Session(), fmt.Errorf("issuing bonus card: %w", err)
		}
	}
	return s.Session(), nil
}

// Logout wipes the user, all cards and all family and friend data.
// Unconditional once a session exists; no confirmation step.
func (s *Service) Logout() (models.Session, error) {
	if _, err := s.requireSession(); err != nil {
		return s.Session(), err
	}
	s.repo.Clear()
	return s.Session(), nil
}

// IssueCard issues a card of the requested category and type on the given
// payment network. Quota is enforced per plan; premium-only categories are
// rejected for non-premium accounts regardless of quota.
func (s *Service) IssueCard(category models.CardCategory, cardType models.CardType, system models.PaymentSystem) (*models.BankCard, error) {
	user, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, ErrValidation)
	}
	if !cardType.Valid() {
		return nil, fmt.Errorf("unknown card type %q: %w", cardType, ErrValidation)
	}
	if system == "" {
		system = s.cfg.StarterPaymentSystem
	}
	if !system.Valid() {
		return nil, fmt.Errorf("unknown payment system %q: %w", system, ErrValidation)
	}
	if category.PremiumOnly() && !user.IsPremium {
		return nil, fmt.Errorf("category %s: %w", category, ErrPlanRestricted)
	}
	quota := s.cfg.CardQuota
	if user.IsPremium {
		quota = s.cfg.PremiumCardQuota
	}
	if s.repo.CountCards() >= quota {
		return nil, fmt.Errorf("plan allows %d cards: %w", quota, ErrQuotaExceeded)
	}

	return s.createCard(category, cardType, system, 0)
}

// createCard synthesizes number, CVV and expiry, then appends the card to
// the ledger. Number collisions are retried with a fresh number.
func (s *Service) createCard(category models.CardCategory, cardType models.CardType, system models.PaymentSystem, balance int64) (*models.BankCard, error) {
	cvv, err := s.gen.CVV()
	if err != nil {
		return nil, fmt.Errorf("generating cvv: %w", err)
	}
	month, err := s.gen.Intn(12)
	if err != nil {
		return nil, fmt.Errorf("picking expiry month: %w", err)
	}
	face := expiry.Face(time.Month(month+1), s.now().Year()+expiry.ValidityYears)
	daily, monthly := category.DefaultLimits()

	for attempt := 0; attempt < 5; attempt++ {
		number, err := s.gen.Number(system.Prefix())
		if err != nil {
			return nil, fmt.Errorf("generating card number: %w", err)
		}
		card := &models.BankCard{
			ID:            uuid.New().String(),
			Name:          category.DisplayName(),
			Category:      category,
			Type:          cardType,
			Number:        cardgen.Format(number),
			MaskedNumber:  cardgen.Mask(number),
			Balance:       balance,
			PaymentSystem: system,
			CVV:           cvv,
			ExpiryDate:    face,
			DailyLimit:    daily,
			MonthlyLimit:  monthly,
		}
		err = s.repo.CreateCard(card)
		if err == nil {
			return card, nil
		}
		if errors.Is(err, ErrConflict) {
			continue
		}
		return nil, fmt.Errorf("creating card: %w", err)
	}
	return nil, fmt.Errorf("could not create unique card after retries")
}

// Card returns a single card by ID.
func (s *Service) Card(cardID string) (*models.BankCard, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	card, err := s.repo.GetCard(cardID)
	if err != nil {
		return nil, fmt.Errorf("finding card: %w", err)
	}
	return card, nil
}

// Cards lists the session's cards in issuance order.
func (s *Service) Cards() ([]*models.BankCard, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.repo.ListCards(), nil
}

// ApplyCredit adds amount to the card balance as a one-shot credit grant.
// Non-premium accounts are capped per request by the configured ceiling.
// Blocked cards still accept credit grants.
func (s *Service) ApplyCredit(cardID string, amount int64) (*models.BankCard, error) {
	user, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cardID) == "" {
		return nil, fmt.Errorf("card id is required: %w", ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", ErrValidation)
	}
	if !user.IsPremium && amount > s.cfg.CreditCeiling {
		return nil, fmt.Errorf("credit of %d above ceiling %d: %w", amount, s.cfg.CreditCeiling, ErrLimitExceeded)
	}
	card, err := s.repo.AddToBalance(cardID, amount)
	if err != nil {
		return nil, fmt.Errorf("crediting card: %w", err)
	}
	return card, nil
}

// SetBlocked toggles the card block flag. No side effect on balance or
// limits.
func (s *Service) SetBlocked(cardID string, blocked bool) (*models.BankCard, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	card, err := s.repo.SetCardBlocked(cardID, blocked)
	if err != nil {
		return nil, fmt.Errorf("blocking card: %w", err)
	}
	return card, nil
}

// RenameCard sets the user-visible card label.
func (s *Service) RenameCard(cardID, name string) (*models.BankCard, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	card, err := s.repo.RenameCard(cardID, name)
	if err != nil {
		return nil, fmt.Errorf("renaming card: %w", err)
	}
	return card, nil
}

// UpdateLimits overwrites both limits. The daily/monthly relationship is
// deliberately not validated; only negative values are rejected.
func (s *Service) UpdateLimits(cardID string, daily, monthly int64) (*models.BankCard, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	if daily < 0 || monthly < 0 {
		return nil, fmt.Errorf("limits must be non-negative: %w", ErrValidation)
	}
	card, err := s.repo.SetCardLimits(cardID, daily, monthly)
	if err != nil {
		return nil, fmt.Errorf("updating limits: %w", err)
	}
	return card, nil
}

// DeleteCard removes the card from the ledger. Deleting an already-deleted
// ID is a no-op.
func (s *Service) DeleteCard(cardID string) error {
	if _, err := s.requireSession(); err != nil {
		return err
	}
	s.repo.DeleteCard(cardID)
	return nil
}

// TotalBalance sums all card balances.
func (s *Service) TotalBalance() (int64, error) {
	if _, err := s.requireSession(); err != nil {
		return 0, err
	}
	return s.repo.TotalBalance(), nil
}

// Transfer moves amount between two of the session's cards.
func (s *Service) Transfer(fromID, toID string, amount int64) error {
	if _, err := s.requireSession(); err != nil {
		return err
	}
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" {
		return fmt.Errorf("both cards are required: %w", ErrValidation)
	}
	if fromID == toID {
		return fmt.Errorf("cannot transfer to the same card: %w", ErrValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrValidation)
	}
	if err := s.repo.Transfer(fromID, toID, amount); err != nil {
		return fmt.Errorf("transferring: %w", err)
	}
	return nil
}

// CreateFamily starts a new family with a generated invite code; the
// current user becomes owner and sole member.
func (s *Service) CreateFamily() (*models.Family, error) {
	user, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	code, err := familycode.Generate(s.gen)
	if err != nil {
		return nil, fmt.Errorf("generating family code: %w", err)
	}
	family := &models.Family{
		Code:       code,
		OwnerPhone: user.Phone,
		Members:    []string{user.Phone},
	}
	s.repo.SetFamily(family)
	return family, nil
}

// JoinFamily joins by code. Any non-empty code is accepted client-side and
// replaces an existing membership.
func (s *Service) JoinFamily(code string) (*models.Family, error) {
	user, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("code is required: %w", ErrValidation)
	}
	family := &models.Family{
		Code:    code,
		Members: []string{user.Phone},
	}
	s.repo.SetFamily(family)
	return family, nil
}

// Family returns the current family, or ErrNotFound when the user is not
// in one.
func (s *Service) Family() (*models.Family, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	family := s.repo.Family()
	if family == nil {
		return nil, ErrNotFound
	}
	return family, nil
}

// AddFriend appends a contact to the roster. No phone-format validation
// and no duplicate check.
func (s *Service) AddFriend(name, phone string) (*models.Friend, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("name and phone are required: %w", ErrValidation)
	}
	friend := &models.Friend{
		ID:    uuid.New().String(),
		Name:  name,
		Phone: phone,
	}
	s.repo.AddFriend(friend)
	return friend, nil
}

// Friends lists the roster.
func (s *Service) Friends() ([]*models.Friend, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.repo.ListFriends(), nil
}

// RemoveFriend removes by ID if present.
func (s *Service) RemoveFriend(friendID string) error {
	if _, err := s.requireSession(); err != nil {
		return err
	}
	s.repo.RemoveFriend(friendID)
	return nil
}
