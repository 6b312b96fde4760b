package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// Currency conversion happens once at the client boundary. Values cross it
// exactly: no floats, so a price formatted for submission and parsed back
// for display reproduces the original decimal to the wei.

const etherDecimals = 18

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(etherDecimals), nil)

// EtherToWei parses a decimal ether string ("3.5") into wei.
func EtherToWei(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		return nil, fmt.Errorf("negative amount: %s", s)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > etherDecimals {
		return nil, fmt.Errorf("too many decimal places in %s", s)
	}
	frac += strings.Repeat("0", etherDecimals-len(frac))

	w, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	f, ok := new(big.Int).SetString(frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}

	wei := new(big.Int).Mul(w, weiPerEther)
	return wei.Add(wei, f), nil
}

// WeiToEther formats a wei amount as a decimal ether string with trailing
// zeros trimmed ("3.5", not "3.500000000000000000").
func WeiToEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	q, r := new(big.Int).QuoRem(wei, weiPerEther, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := fmt.Sprintf("%018s", r.String())
	frac = strings.TrimRight(frac, "0")
	return q.String() + "." + frac
}
