package cardgen

import (
	mrand "math/rand"
	"strings"
	"testing"
)

func testGen(seed int64) *Generator {
	return New(mrand.New(mrand.NewSource(seed)))
}

func TestNumber_LuhnValid(t *testing.T) {
	g := testGen(1)
	for _, prefix := range []string{"4", "5", "220", "221", "62"} {
		for i := 0; i < 50; i++ {
			n, err := g.Number(prefix)
			if err != nil {
				t.Fatalf("Number(%q): %v", prefix, err)
			}
			if len(n) != 16 {
				t.Fatalf("Number(%q) = %q, want 16 digits", prefix, n)
			}
			if !strings.HasPrefix(n, prefix) {
				t.Fatalf("Number(%q) = %q, missing prefix", prefix, n)
			}
			if !ValidNumber(n) {
				t.Fatalf("Number(%q) = %q fails Luhn", prefix, n)
			}
		}
	}
}

func TestNumber_BadPrefix(t *testing.T) {
	g := testGen(1)
	for _, prefix := range []string{"", "4a", "1234567890123456"} {
		if _, err := g.Number(prefix); err == nil {
			t.Fatalf("Number(%q): expected error", prefix)
		}
	}
}

func TestNumber_Deterministic(t *testing.T) {
	a, err := testGen(7).Number("4")
	if err != nil {
		t.Fatal(err)
	}
	b, err := testGen(7).Number("4")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed produced %q and %q", a, b)
	}
}

func TestDigits(t *testing.T) {
	g := testGen(2)
	d, err := g.Digits(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 32 || !IsDigits(d) {
		t.Fatalf("Digits(32) = %q", d)
	}
	if d, _ := g.Digits(0); d != "" {
		t.Fatalf("Digits(0) = %q, want empty", d)
	}
}

func TestCVV_Range(t *testing.T) {
	g := testGen(3)
	for i := 0; i < 200; i++ {
		cvv, err := g.CVV()
		if err != nil {
			t.Fatal(err)
		}
		if len(cvv) != 3 || !IsDigits(cvv) || cvv < "100" {
			t.Fatalf("CVV = %q, want 100..999", cvv)
		}
	}
}

func TestIntn(t *testing.T) {
	g := testGen(4)
	for i := 0; i < 200; i++ {
		v, err := g.Intn(12)
		if err != nil {
			t.Fatal(err)
		}
		if v < 0 || v >= 12 {
			t.Fatalf("Intn(12) = %d", v)
		}
	}
	if _, err := g.Intn(0); err == nil {
		t.Fatal("Intn(0): expected error")
	}
}

func TestValidNumber(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"4532015112830366", true},
		{"4532 0151 1283 0366", true},
		{"4532015112830367", false},
		{"453201511283036", false}, // truncated, wrong check digit
		{"not-a-number", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidNumber(c.in); got != c.ok {
			t.Fatalf("ValidNumber(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}

func TestFormatAndMask(t *testing.T) {
	n := "4532015112830366"
	if got := Format(n); got != "4532 0151 1283 0366" {
		t.Fatalf("Format = %q", got)
	}
	if got := Mask(n); got != "**** **** **** 0366" {
		t.Fatalf("Mask = %q", got)
	}
	if got := Mask("366"); got != "366" {
		t.Fatalf("Mask short = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(" 4532-0151 1283\t0366 "); got != "4532015112830366" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestLastN(t *testing.T) {
	if got := LastN("4532015112830366", 4); got != "0366" {
		t.Fatalf("LastN = %q", got)
	}
	if got := LastN("42", 4); got != "42" {
		t.Fatalf("LastN short = %q", got)
	}
}
