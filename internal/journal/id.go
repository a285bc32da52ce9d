package journal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NextTradeID mints the next sequential trade ID in the T-NNNNNN
// format, derived from the highest numeric suffix already present.
// IDs stay collision-free as long as they are only minted here.
func NextTradeID(existing []string) string {
	max := 0
	for _, id := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(id, "T-"))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("T-%06d", max+1)
}

// NextID mints a sequential ID for an arbitrary namespace (accounts,
// rules, setups): the highest digits-only segment of the existing IDs
// plus one, with the given prefix.
func NextID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		var digits strings.Builder
		for _, r := range id {
			if unicode.IsDigit(r) {
				digits.WriteRune(r)
			}
		}
		n, err := strconv.Atoi(digits.String())
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%d", prefix, max+1)
}
