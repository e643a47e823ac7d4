package main

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// parseAmount converts decimal user input ("1.5") into smallest-unit
// lamports, rejecting zero, negatives and anything below one lamport.
// Decimal arithmetic avoids the precision loss of float multiplication.
func parseAmount(input string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(input)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("amount %q must be greater than zero", input)
	}

	lamports := d.Shift(int32(decimals))
	if !lamports.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", input, decimals)
	}
	bi := lamports.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount %q is out of range", input)
	}
	return bi.Uint64(), nil
}

// formatAmount renders lamports as a fixed-point decimal string.
func formatAmount(lamports uint64, decimals uint8) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -int32(decimals))
	return d.StringFixed(int32(decimals))
}
