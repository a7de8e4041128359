package bank

import (
	"fmt"
	"sync"

	"github.com/jonanatree/yuganbank/bank/models"
	"golang.org/x/exp/slices"
)

// Repository is the in-memory session store. All state belongs to the
// single active session and is wiped at logout; nothing survives the
// process. Every method is atomic under the lock and callers receive
// copies, never live pointers.
type Repository struct {
	mu sync.RWMutex

	user    *models.User
	cards   []*models.BankCard
	family  *models.Family
	friends []*models.Friend

	numberIndex map[string]struct{}
}

func NewRepository() *Repository {
	return &Repository{
		cards:       make([]*models.BankCard, 0),
		friends:     make([]*models.Friend, 0),
		numberIndex: make(map[string]struct{}),
	}
}

// Clear wipes the session: user, cards, family and friends.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = nil
	r.cards = r.cards[:0]
	r.family = nil
	r.friends = r.friends[:0]
	r.numberIndex = make(map[string]struct{})
}

func (r *Repository) SetUser(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.user = &u
}

// User returns a copy of the session user, or nil when unauthenticated.
func (r *Repository) User() *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.user == nil {
		return nil
	}
	u := *r.user
	return &u
}

func (r *Repository) SetPremium(premium bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.user == nil {
		return nil, ErrNoSession
	}
	r.user.IsPremium = premium
	u := *r.user
	return &u, nil
}

func (r *Repository) CreateCard(card *models.BankCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.numberIndex[card.Number]; ok {
		return fmt.Errorf("card number exists: %w", ErrConflict)
	}
	c := *card
	r.cards = append(r.cards, &c)
	r.numberIndex[c.Number] = struct{}{}
	return nil
}

func (r *Repository) GetCard(cardID string) (*models.BankCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.cards {
		if c.ID == cardID {
			cc := *c
			return &cc, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Repository) ListCards() []*models.BankCard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.BankCard, 0, len(r.cards))
	for _, c := range r.cards {
		cc := *c
		out = append(out, &cc)
	}
	return out
}

func (r *Repository) CountCards() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cards)
}

// ExistsCardNumber reports whether a card number already exists.
func (r *Repository) ExistsCardNumber(number string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.numberIndex[number]
	return ok
}

// updateCard applies fn to the card under the write lock and returns a
// copy of the result.
func (r *Repository) updateCard(cardID string, fn func(*models.BankCard) error) (*models.BankCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cards {
		if c.ID == cardID {
			if err := fn(c); err != nil {
				return nil, err
			}
			cc := *c
			return &cc, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Repository) RenameCard(cardID, name string) (*models.BankCard, error) {
	return r.updateCard(cardID, func(c *models.BankCard) error {
		c.Name = name
		return nil
	})
}

func (r *Repository) SetCardBlocked(cardID string, blocked bool) (*models.BankCard, error) {
	return r.updateCard(cardID, func(c *models.BankCard) error {
		c.IsBlocked = blocked
		return nil
	})
}

func (r *Repository) SetCardLimits(cardID string, daily, monthly int64) (*models.BankCard, error) {
	return r.updateCard(cardID, func(c *models.BankCard) error {
		c.DailyLimit = daily
		c.MonthlyLimit = monthly
		return nil
	})
}

// AddToBalance credits amount to the card balance.
func (r *Repository) AddToBalance(cardID string, amount int64) (*models.BankCard, error) {
	return r.updateCard(cardID, func(c *models.BankCard) error {
		c.Balance += amount
		return nil
	})
}

// Transfer moves amount between two cards atomically. The source balance
// must cover the amount.
func (r *Repository) Transfer(fromID, toID string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var from, to *models.BankCard
	for _, c := range r.cards {
		switch c.ID {
		case fromID:
			from = c
		case toID:
			to = c
		}
	}
	if from == nil || to == nil {
		return ErrNotFound
	}
	if from.Balance < amount {
		return ErrInsufficientFunds
	}
	from.Balance -= amount
	to.Balance += amount
	return nil
}

// DeleteCard removes the card if present; deleting an unknown ID is a
// no-op.
func (r *Repository) DeleteCard(cardID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := slices.IndexFunc(r.cards, func(c *models.BankCard) bool {
		return c.ID == cardID
	})
	if idx < 0 {
		return
	}
	delete(r.numberIndex, r.cards[idx].Number)
	r.cards = slices.Delete(r.cards, idx, idx+1)
}

// TotalBalance sums all card balances. Recomputed on demand, not cached.
func (r *Repository) TotalBalance() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, c := range r.cards {
		total += c.Balance
	}
	return total
}

func (r *Repository) SetFamily(family *models.Family) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := *family
	f.Members = slices.Clone(family.Members)
	r.family = &f
}

// Family returns a copy of the current family, or nil when the user is not
// in one.
func (r *Repository) Family() *models.Family {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.family == nil {
		return nil
	}
	f := *r.family
	f.Members = slices.Clone(r.family.Members)
	return &f
}

func (r *Repository) AddFriend(friend *models.Friend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := *friend
	r.friends = append(r.friends, &f)
}

func (r *Repository) ListFriends() []*models.Friend {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Friend, 0, len(r.friends))
	for _, f := range r.friends {
		ff := *f
		out = append(out, &ff)
	}
	return out
}

// RemoveFriend removes by ID if present; unknown IDs are a no-op.
func (r *Repository) RemoveFriend(friendID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := slices.IndexFunc(r.friends, func(f *models.Friend) bool {
		return f.ID == friendID
	})
	if idx < 0 {
		return
	}
	r.friends = slices.Delete(r.friends, idx, idx+1)
}
