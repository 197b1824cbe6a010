package progress

import (
	"math/big"
	"strings"
)

// NumericKey extracts every ASCII digit of name, in order, and returns them
// as a number. "Thread10" yields 10, "w1-2" yields 12. ok is false when name
// has no digits.
func NumericKey(name string) (key *big.Int, ok bool) {
	var digits strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil, false
	}
	key, ok = new(big.Int).SetString(digits.String(), 10)
	return key, ok
}

// Less orders names by their numeric key, placing names without digits after
// all numbered names. Ties fall back to plain string order so the result is a
// total order.
func Less(a, b string) bool {
	ka, okA := NumericKey(a)
	kb, okB := NumericKey(b)
	switch {
	case okA && okB:
		if c := ka.Cmp(kb); c != 0 {
			return c < 0
		}
	case okA != okB:
		return okA
	}
	return a < b
}
