package bank

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jonanatree/yuganbank/bank/models"
)

// Config is a configuration for the bank application.
type Config struct {
	HTTPAddr string
	// WelcomeBonus is the balance granted on the starter card issued at
	// registration. Zero by default.
	WelcomeBonus int64
	// StarterCategory is the category of the starter card.
	StarterCategory models.CardCategory
	// StarterPaymentSystem is the network of the starter card.
	StarterPaymentSystem models.PaymentSystem
	// CardQuota and PremiumCardQuota cap the number of cards per plan.
	CardQuota        int
	PremiumCardQuota int
	// CreditCeiling is the maximum credit amount per request for
	// non-premium accounts. Premium accounts are unbounded.
	CreditCeiling int64
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:             "localhost:8080",
		WelcomeBonus:         0,
		StarterCategory:      models.CategoryYouthDebit,
		StarterPaymentSystem: models.MIR,
		CardQuota:            3,
		PremiumCardQuota:     10,
		CreditCeiling:        100_000,
	}
}

// LoadConfig builds a Config from the environment, reading a .env file if
// one is present. Unset variables keep their defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.HTTPAddr = getenv("BANK_HTTP_ADDR", cfg.HTTPAddr)
	cfg.WelcomeBonus = getenvInt64("BANK_WELCOME_BONUS", cfg.WelcomeBonus)
	cfg.CreditCeiling = getenvInt64("BANK_CREDIT_CEILING", cfg.CreditCeiling)
	if v := os.Getenv("BANK_STARTER_CATEGORY"); v != "" {
		if c := models.CardCategory(v); c.Valid() {
			cfg.StarterCategory = c
		}
	}
	if v := os.Getenv("BANK_STARTER_PAYMENT_SYSTEM"); v != "" {
		if p := models.PaymentSystem(v); p.Valid() {
			cfg.StarterPaymentSystem = p
		}
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
