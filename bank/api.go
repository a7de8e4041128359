package bank

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jonanatree/yuganbank/bank/models"
)

// API is the HTTP presentation layer over the bank service. It collects
// input, invokes core operations and surfaces their errors; it holds no
// state of its own.
type API struct {
	bank *Service
}

func NewAPI(bank *Service) *API {
	return &API{
		bank: bank,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", a.getSession)
		r.Post("/register", a.register)
		r.Post("/premium", a.activatePremium)
		r.Delete("/", a.logout)
	})
	r.Route("/cards", func(r chi.Router) {
		r.Post("/", a.issueCard)
		r.Get("/", a.listCards)
		r.Route("/{cardID}", func(r chi.Router) {
			r.Get("/", a.getCard)
			r.Delete("/", a.deleteCard)
			r.Post("/block", a.setBlocked)
			r.Post("/name", a.renameCard)
			r.Post("/limits", a.updateLimits)
		})
	})
	r.Get("/balance", a.totalBalance)
	r.Post("/credits", a.applyCredit)
	r.Post("/transfers", a.transfer)
	r.Route("/family", func(r chi.Router) {
		r.Post("/", a.createFamily)
		r.Post("/join", a.joinFamily)
		r.Get("/", a.getFamily)
	})
	r.Route("/friends", func(r chi.Router) {
		r.Post("/", a.addFriend)
		r.Get("/", a.listFriends)
		r.Delete("/{friendID}", a.removeFriend)
	})
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.bank.Session())
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := a.bank.Register(req.Phone, req.FirstName, req.LastName, req.MiddleName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (a *API) activatePremium(w http.ResponseWriter, r *http.Request) {
	var req models.ActivatePremiumRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	session, err := a.bank.ActivatePremium(req.Package)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	session, err := a.bank.Logout()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (a *API) issueCard(w http.ResponseWriter, r *http.Request) {
	var req models.IssueCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	card, err := a.bank.IssueCard(req.Category, req.Type, req.PaymentSystem)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (a *API) listCards(w http.ResponseWriter, r *http.Request) {
	cards, err := a.bank.Cards()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (a *API) getCard(w http.ResponseWriter, r *http.Request) {
	card, err := a.bank.Card(chi.URLParam(r, "cardID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *API) deleteCard(w http.ResponseWriter, r *http.Request) {
	if err := a.bank.DeleteCard(chi.URLParam(r, "cardID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) setBlocked(w http.ResponseWriter, r *http.Request) {
	var req models.BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	card, err := a.bank.SetBlocked(chi.URLParam(r, "cardID"), req.Blocked)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *API) renameCard(w http.ResponseWriter, r *http.Request) {
	var req models.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	card, err := a.bank.RenameCard(chi.URLParam(r, "cardID"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *API) updateLimits(w http.ResponseWriter, r *http.Request) {
	var req models.LimitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	card, err := a.bank.UpdateLimits(chi.URLParam(r, "cardID"), req.DailyLimit, req.MonthlyLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *API) totalBalance(w http.ResponseWriter, r *http.Request) {
	total, err := a.bank.TotalBalance()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TotalBalanceResponse{TotalBalance: total})
}

func (a *API) applyCredit(w http.ResponseWriter, r *http.Request) {
	var req models.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	card, err := a.bank.ApplyCredit(req.CardID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *API) transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := a.bank.Transfer(req.FromCardID, req.ToCardID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) createFamily(w http.ResponseWriter, r *http.Request) {
	family, err := a.bank.CreateFamily()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, family)
}

func (a *API) joinFamily(w http.ResponseWriter, r *http.Request) {
	var req models.JoinFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	family, err := a.bank.JoinFamily(req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, family)
}

func (a *API) getFamily(w http.ResponseWriter, r *http.Request) {
	family, err := a.bank.Family()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, family)
}

func (a *API) addFriend(w http.ResponseWriter, r *http.Request) {
	var req models.AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	friend, err := a.bank.AddFriend(req.Name, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, friend)
}

func (a *API) listFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := a.bank.Friends()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

func (a *API) removeFriend(w http.ResponseWriter, r *http.Request) {
	if err := a.bank.RemoveFriend(chi.URLParam(r, "friendID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps core errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNoSession):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrPlanRestricted):
		status = http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrLimitExceeded),
		errors.Is(err, ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}
