package familycode

import (
	"fmt"

	"github.com/jonanatree/yuganbank/internal/cardgen"
)

// words is the fixed pool family codes draw from. Codes are meant to be
// read over the phone, so the words are short and unambiguous.
var words = []string{
	"maple", "river", "comet", "tiger",
	"pearl", "cedar", "sunny", "nova",
}

// Generate produces a human-readable invite code: a word from the pool
// plus a random 4-digit number, e.g. "maple-4821".
func Generate(g *cardgen.Generator) (string, error) {
	i, err := g.Intn(len(words))
	if err != nil {
		return "", fmt.Errorf("pick word: %w", err)
	}
	digits, err := g.Digits(4)
	if err != nil {
		return "", fmt.Errorf("pick digits: %w", err)
	}
	return words[i] + "-" + digits, nil
}

// Words returns the code word pool (for validation and tests).
func Words() []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}
