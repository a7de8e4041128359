package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonanatree/yuganbank/bank/models"
)

// Client is a typed HTTP client for the bank API, used by tools and the
// end-to-end tests.
type Client struct {
	Base string
	HTTP *http.Client
}

func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s status=%d body=%s", method, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Session(ctx context.Context) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodGet, "/session", nil, &s)
	return s, err
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodPost, "/session/register", req, &s)
	return s, err
}

func (c *Client) ActivatePremium(ctx context.Context, pkg models.PremiumPackage) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodPost, "/session/premium", models.ActivatePremiumRequest{Package: pkg}, &s)
	return s, err
}

func (c *Client) Logout(ctx context.Context) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodDelete, "/session", nil, &s)
	return s, err
}

func (c *Client) IssueCard(ctx context.Context, req models.IssueCardRequest) (*models.BankCard, error) {
	var card models.BankCard
	if err := c.do(ctx, http.MethodPost, "/cards", req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) Cards(ctx context.Context) ([]*models.BankCard, error) {
	var cards []*models.BankCard
	if err := c.do(ctx, http.MethodGet, "/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) Card(ctx context.Context, cardID string) (*models.BankCard, error) {
	var card models.BankCard
	if err := c.do(ctx, http.MethodGet, "/cards/"+cardID, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+cardID, nil, nil)
}

func (c *Client) SetBlocked(ctx context.Context, cardID string, blocked bool) (*models.BankCard, error) {
	var card models.BankCard
	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID+"/block", models.BlockRequest{Blocked: blocked}, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) RenameCard(ctx context.Context, cardID, name string) (*models.BankCard, error) {
	var card models.BankCard
	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID+"/name", models.RenameRequest{Name: name}, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) UpdateLimits(ctx context.Context, cardID string, daily, monthly int64) (*models.BankCard, error) {
	var card models.BankCard
	req := models.LimitsRequest{DailyLimit: daily, MonthlyLimit: monthly}
	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID+"/limits", req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) TotalBalance(ctx context.Context) (int64, error) {
	var resp models.TotalBalanceResponse
	if err := c.do(ctx, http.MethodGet, "/balance", nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalBalance, nil
}

func (c *Client) ApplyCredit(ctx context.Context, cardID string, amount int64) (*models.BankCard, error) {
	var card models.BankCard
	req := models.CreditRequest{CardID: cardID, Amount: amount}
	if err := c.do(ctx, http.MethodPost, "/credits", req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) Transfer(ctx context.Context, fromID, toID string, amount int64) error {
	req := models.TransferRequest{FromCardID: fromID, ToCardID: toID, Amount: amount}
	return c.do(ctx, http.MethodPost, "/transfers", req, nil)
}

func (c *Client) CreateFamily(ctx context.Context) (*models.Family, error) {
	var family models.Family
	if err := c.do(ctx, http.MethodPost, "/family", nil, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (c *Client) JoinFamily(ctx context.Context, code string) (*models.Family, error) {
	var family models.Family
	if err := c.do(ctx, http.MethodPost, "/family/join", models.JoinFamilyRequest{Code: code}, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (c *Client) Family(ctx context.Context) (*models.Family, error) {
	var family models.Family
	if err := c.do(ctx, http.MethodGet, "/family", nil, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (c *Client) AddFriend(ctx context.Context, name, phone string) (*models.Friend, error) {
	var friend models.Friend
	if err := c.do(ctx, http.MethodPost, "/friends", models.AddFriendRequest{Name: name, Phone: phone}, &friend); err != nil {
		return nil, err
	}
	return &friend, nil
}

func (c *Client) Friends(ctx context.Context) ([]*models.Friend, error) {
	var friends []*models.Friend
	if err := c.do(ctx, http.MethodGet, "/friends", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

func (c *Client) RemoveFriend(ctx context.Context, friendID string) error {
	return c.do(ctx, http.MethodDelete, "/friends/"+friendID, nil, nil)
}
