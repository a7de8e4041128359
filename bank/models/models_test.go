package models

import "testing"

func TestCardCategory(t *testing.T) {
	all := []CardCategory{
		CategoryChildDebit, CategoryYouthDebit, CategoryCredit,
		CategorySticker, CategoryPremium, CategorySuperCredit,
	}
	for _, c := range all {
		if !c.Valid() {
			t.Fatalf("%s should be valid", c)
		}
		if c.DisplayName() == "" {
			t.Fatalf("%s has no display name", c)
		}
		daily, monthly := c.DefaultLimits()
		if daily <= 0 || monthly <= 0 {
			t.Fatalf("%s has no default limits", c)
		}
	}
	if CardCategory("gold-sticker").Valid() {
		t.Fatal("unknown category should not be valid")
	}

	premiumOnly := map[CardCategory]bool{
		CategoryPremium: true, CategorySuperCredit: true,
	}
	for _, c := range all {
		if c.PremiumOnly() != premiumOnly[c] {
			t.Fatalf("PremiumOnly(%s) = %v", c, c.PremiumOnly())
		}
	}
}

func TestPremiumPackage(t *testing.T) {
	for _, p := range []PremiumPackage{PackageNone, PackageGold, PackagePlatinum} {
		if !p.Valid() {
			t.Fatalf("%q should be valid", p)
		}
	}
	if PremiumPackage("diamond").Valid() {
		t.Fatal("unknown package should not be valid")
	}
}

func TestPaymentSystemPrefix(t *testing.T) {
	want := map[PaymentSystem]string{
		Visa:       "4",
		MasterCard: "5",
		MIR:        "220",
		MIR2:       "221",
		UnionPay:   "62",
		VisaPlus:   "4",
	}
	for system, prefix := range want {
		if !system.Valid() {
			t.Fatalf("%s should be valid", system)
		}
		if got := system.Prefix(); got != prefix {
			t.Fatalf("Prefix(%s) = %q, want %q", system, got, prefix)
		}
	}
	if PaymentSystem("amex").Valid() {
		t.Fatal("unknown system should not be valid")
	}
	if PaymentSystem("amex").Prefix() != "" {
		t.Fatal("unknown system should have no prefix")
	}
}
