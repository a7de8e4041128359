package bank_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jonanatree/yuganbank/bank"
	"github.com/jonanatree/yuganbank/bank/models"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	router := chi.NewRouter()
	api := bank.NewAPI(bank.NewService(bank.NewRepository(), bank.DefaultConfig()))
	api.AppendRoutes(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerHTTP(t *testing.T, router chi.Router) models.Session {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/session/register", models.RegisterRequest{
		Phone:      "+79990000000",
		FirstName:  "Ivan",
		LastName:   "Petrov",
		MiddleName: "Ivanovich",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var session models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

func TestAPI_Register(t *testing.T) {
	router := newTestRouter(t)

	session := registerHTTP(t, router)
	require.True(t, session.Authenticated)
	require.Equal(t, "Ivan", session.User.FirstName)

	// The starter card is already in the list.
	w := doJSON(t, router, http.MethodGet, "/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cards []*models.BankCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
}

func TestAPI_Register_Validation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/session/register", models.RegisterRequest{
		Phone: "+79990000000",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_SessionGate(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/cards", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/cards", models.IssueCardRequest{
		Category: models.CategoryCredit,
		Type:     models.CardTypeVirtual,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_IssueCard(t *testing.T) {
	router := newTestRouter(t)
	registerHTTP(t, router)

	w := doJSON(t, router, http.MethodPost, "/cards", models.IssueCardRequest{
		Category:      models.CategoryCredit,
		Type:          models.CardTypePlastic,
		PaymentSystem: models.MasterCard,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var card models.BankCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	require.Equal(t, models.CategoryCredit, card.Category)
	require.Equal(t, models.MasterCard, card.PaymentSystem)
	require.NotEmpty(t, card.Number)
	require.NotEmpty(t, card.CVV)
}

func TestAPI_IssueCard_StatusMapping(t *testing.T) {
	router := newTestRouter(t)
	registerHTTP(t, router)

	// Premium-only category on the basic plan.
	w := doJSON(t, router, http.MethodPost, "/cards", models.IssueCardRequest{
		Category: models.CategorySuperCredit,
		Type:     models.CardTypeVirtual,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Fill the quota, then expect 422.
	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPost, "/cards", models.IssueCardRequest{
			Category: models.CategoryCredit,
			Type:     models.CardTypeVirtual,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/cards", models.IssueCardRequest{
		Category: models.CategoryCredit,
		Type:     models.CardTypeVirtual,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAPI_Credit(t *testing.T) {
	router := newTestRouter(t)
	registerHTTP(t, router)

	w := doJSON(t, router, http.MethodGet, "/cards", nil)
	var cards []*models.BankCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	cardID := cards[0].ID

	w = doJSON(t, router, http.MethodPost, "/credits", models.CreditRequest{CardID: cardID, Amount: 50_000})
	require.Equal(t, http.StatusOK, w.Code)

	var card models.BankCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	require.Equal(t, int64(50_000), card.Balance)

	w = doJSON(t, router, http.MethodPost, "/credits", models.CreditRequest{CardID: cardID, Amount: 150_000})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, router, http.MethodPost, "/credits", models.CreditRequest{CardID: "no-such-card", Amount: 100})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/credits", models.CreditRequest{CardID: cardID})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_DeleteCard_Idempotent(t *testing.T) {
	router := newTestRouter(t)
	registerHTTP(t, router)

	w := doJSON(t, router, http.MethodGet, "/cards", nil)
	var cards []*models.BankCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	cardID := cards[0].ID

	w = doJSON(t, router, http.MethodDelete, "/cards/"+cardID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/cards/"+cardID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestAPI_Logout(t *testing.T) {
	router := newTestRouter(t)
	registerHTTP(t, router)

	w := doJSON(t, router, http.MethodDelete, "/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var session models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.False(t, session.Authenticated)

	w = doJSON(t, router, http.MethodGet, "/cards", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
