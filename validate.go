package dh

import "math/big"

// isValidPublicValue reports whether y is a plausible DH public value
// for the group with prime p: strictly between 1 and p-1. This is the
// same bound the reference implementation checks both when generating
// a key (reject and retry) and when accepting a peer's public value
// during agreement (reject outright).
func isValidPublicValue(y, p *big.Int) bool {
	if y == nil || p == nil {
		return false
	}
	one := big.NewInt(1)
	pMinusOne := new(big.Int).Sub(p, one)
	return y.Cmp(one) > 0 && y.Cmp(pMinusOne) < 0
}
