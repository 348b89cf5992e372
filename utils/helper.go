package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const quoteIdRandomLen = 7

// GenerateQuoteId builds a time-based identifier with a short random
// disambiguator, e.g. "quote_1717489322712_k3f9a1z".
func GenerateQuoteId() string {
	timestamp := time.Now().UnixMilli()

	var b strings.Builder
	for i := 0; i < quoteIdRandomLen; i++ {
		b.WriteString(strconv.FormatInt(int64(rand.Intn(36)), 36))
	}

	return fmt.Sprintf("quote_%d_%s", timestamp, b.String())
}

// FormatAmount renders a whole-won amount with thousands separators ("1,234,567").
// Fractional digits are dropped after rounding; quote amounts are whole units.
func FormatAmount(amount decimal.Decimal) string {
	s := amount.Round(0).String()

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	return out
}

func DereferencePtr[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
