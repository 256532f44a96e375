package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const XMRDenomination = 1000000000000

var ErrInvalidAmount = errors.New("invalid XMR amount")

func XMRUnits(v uint64) string {
	return fmt.Sprintf("%d.%012d", v/XMRDenomination, v%XMRDenomination)
}

// ParseXMRUnits parses a decimal XMR amount such as "1.5" into atomic units
func ParseXMRUnits(s string) (uint64, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 12 || strings.ContainsAny(whole+frac, "+-") {
		return 0, ErrInvalidAmount
	}

	var w, f uint64
	var err error
	if whole != "" {
		if w, err = strconv.ParseUint(whole, 10, 64); err != nil {
			return 0, ErrInvalidAmount
		}
	}
	if frac != "" {
		frac += strings.Repeat("0", 12-len(frac))
		if f, err = strconv.ParseUint(frac, 10, 64); err != nil {
			return 0, ErrInvalidAmount
		}
	}

	if w > (^uint64(0)-f)/XMRDenomination {
		return 0, ErrInvalidAmount
	}
	return w*XMRDenomination + f, nil
}
