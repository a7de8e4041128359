package cardgen

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// numberLen is the full card number length including the check digit.
const numberLen = 16

// Generator synthesizes card numbers and CVVs from a byte source. The
// source defaults to crypto/rand; tests inject a deterministic reader.
type Generator struct {
	r io.Reader
}

func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{r: r}
}

// Number generates a 16-digit card number: the network prefix, random
// digits to 15, and a trailing Luhn check digit.
func (g *Generator) Number(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("prefix is required")
	}
	if !IsDigits(prefix) {
		return "", fmt.Errorf("prefix must contain digits only")
	}
	fill := numberLen - 1 - len(prefix)
	if fill <= 0 {
		return "", fmt.Errorf("prefix too long: %s", prefix)
	}
	digits, err := g.Digits(fill)
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	body := prefix + digits
	return body + luhnCheckDigit(body), nil
}

// Digits generates count random decimal digits, using rejection sampling
// to avoid modulo bias.
// Logic: accept only bytes < 250, then take mod 10 for a uniform 0-9.
func (g *Generator) Digits(count int) (string, error) {
	if count <= 0 {
		return "", nil
	}
	const threshold = 250 // 256 - (256 % 10)
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 64)
	for sb.Len() < count {
		n, err := g.r.Read(buf)
		if err != nil {
			return "", err
		}
		for i := 0; i < n && sb.Len() < count; i++ {
			b := buf[i]
			if b < threshold {
				sb.WriteByte('0' + (b % 10))
			}
		}
	}
	return sb.String(), nil
}

// CVV generates a uniformly random 3-digit value in [100, 999].
func (g *Generator) CVV() (string, error) {
	n, err := g.Intn(900)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%03d", 100+n), nil
}

// Intn returns a uniform value in [0, n), rejection-sampled from the
// underlying byte source.
func (g *Generator) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("intn: n must be positive")
	}
	max := uint32(n)
	// Reject the low remainder band so v % max stays uniform.
	reject := uint32((1 << 32) % uint64(max))
	buf := make([]byte, 4)
	for {
		if _, err := io.ReadFull(g.r, buf); err != nil {
			return 0, err
		}
		v := binary.BigEndian.Uint32(buf)
		if v >= reject {
			return int(v % max), nil
		}
	}
}

func luhnCheckDigit(body string) string {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	cd := (10 - (sum % 10)) % 10
	return string('0' + byte(cd))
}

// ValidNumber reports whether the number (spaces allowed) is all digits of
// a plausible length with a correct Luhn check digit.
func ValidNumber(number string) bool {
	n := Normalize(number)
	if !IsDigits(n) {
		return false
	}
	if l := len(n); l < 13 || l > 19 {
		return false
	}
	body := n[:len(n)-1]
	return n[len(n)-1:] == luhnCheckDigit(body)
}

// Format groups a raw digit string into space-separated blocks of four.
func Format(number string) string {
	n := Normalize(number)
	var sb strings.Builder
	for i, c := range n {
		if i > 0 && i%4 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// Mask hides all but the last four digits, keeping the block grouping.
func Mask(number string) string {
	n := Normalize(number)
	if len(n) <= 4 {
		return n
	}
	masked := strings.Repeat("*", len(n)-4) + n[len(n)-4:]
	return Format(masked)
}

// Normalize strips spaces, tabs and dashes, returning the bare digits.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, s)
}

func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LastN returns the trailing n characters of s.
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
