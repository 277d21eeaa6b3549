package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrInvalidCurrency indicates that a currency is missing or malformed.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrInvalidAmount indicates that an amount value is missing or negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAmountFormat indicates that a decimal amount string could not be parsed.
	ErrInvalidAmountFormat = errors.New("invalid amount format")
)

// Currency describes a denomination: its code, display name and the number of
// decimal places between the display unit and the base unit.
type Currency struct {
	code     string
	name     string
	decimals uint8
}

// Built-in currencies.
var (
	CurrencyETH = Currency{code: "ETH", name: "Ether", decimals: 18}
	CurrencyBTC = Currency{code: "BTC", name: "Bitcoin", decimals: 8}
)

var knownCurrencies = map[string]Currency{
	CurrencyETH.code: CurrencyETH,
	CurrencyBTC.code: CurrencyBTC,
}

// NewCurrency creates a Currency. The code is upper-cased.
func NewCurrency(code, name string, decimals uint8) (Currency, error) {
	cleanCode := strings.ToUpper(strings.TrimSpace(code))
	if cleanCode == "" {
		return Currency{}, fmt.Errorf("%w: code cannot be empty", ErrInvalidCurrency)
	}
	if name == "" {
		name = cleanCode
	}
	return Currency{code: cleanCode, name: name, decimals: decimals}, nil
}

// LookupCurrency returns a built-in currency by code.
func LookupCurrency(code string) (Currency, bool) {
	c, ok := knownCurrencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Code returns the currency code, e.g. "ETH".
func (c Currency) Code() string {
	return c.code
}

// Name returns the display name.
func (c Currency) Name() string {
	return c.name
}

// Decimals returns the number of base-unit decimal places.
func (c Currency) Decimals() uint8 {
	return c.decimals
}

// IsZero checks if the Currency is the zero value.
func (c Currency) IsZero() bool {
	return c.code == ""
}

// Equals compares code and decimals.
func (c Currency) Equals(other Currency) bool {
	return c.code == other.code && c.decimals == other.decimals
}

// Amount is a non-negative quantity of a currency held in base units (wei, satoshi).
// The underlying integer is never exposed, so an Amount is immutable.
type Amount struct {
	currency Currency
	value    *big.Int
}

// NewAmount creates an Amount from a base-unit integer. The integer is copied.
func NewAmount(currency Currency, baseUnits *big.Int) (Amount, error) {
	if currency.IsZero() {
		return Amount{}, ErrInvalidCurrency
	}
	if baseUnits == nil {
		return Amount{}, fmt.Errorf("%w: value is nil", ErrInvalidAmount)
	}
	if baseUnits.Sign() < 0 {
		return Amount{}, fmt.Errorf("%w: value is negative: %s", ErrInvalidAmount, baseUnits.String())
	}
	return Amount{currency: currency, value: new(big.Int).Set(baseUnits)}, nil
}

// ParseAmount parses a decimal string expressed in display units, e.g. "0.0001" BTC.
func ParseAmount(currency Currency, s string) (Amount, error) {
	if currency.IsZero() {
		return Amount{}, ErrInvalidCurrency
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Amount{}, fmt.Errorf("%w: input string is empty", ErrInvalidAmountFormat)
	}

	intPart, fracPart, hasDot := strings.Cut(trimmed, ".")
	if intPart == "" {
		intPart = "0"
	}
	if hasDot && fracPart == "" {
		return Amount{}, fmt.Errorf("%w: missing fractional digits in '%s'", ErrInvalidAmountFormat, trimmed)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return Amount{}, fmt.Errorf("%w: '%s' is not a non-negative decimal", ErrInvalidAmountFormat, trimmed)
	}

	decimals := int(currency.decimals)
	if len(fracPart) > decimals {
		return Amount{}, fmt.Errorf("%w: '%s' has more than %d fractional digits for %s",
			ErrInvalidAmountFormat, trimmed, decimals, currency.code)
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))

	val, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: failed to parse '%s'", ErrInvalidAmountFormat, trimmed)
	}
	return Amount{currency: currency, value: val}, nil
}

// Currency returns the amount's currency.
func (a Amount) Currency() Currency {
	return a.currency
}

// BaseUnits returns a copy of the value in base units.
func (a Amount) BaseUnits() *big.Int {
	if a.value == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.value)
}

// Decimal formats the value in display units without trailing zeros.
func (a Amount) Decimal() string {
	digits := a.BaseUnits().String()
	decimals := int(a.currency.decimals)
	if decimals == 0 {
		return digits
	}
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	intPart := digits[:len(digits)-decimals]
	fracPart := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

// String returns e.g. "0.0001 BTC".
func (a Amount) String() string {
	if a.IsZero() {
		return ""
	}
	return a.Decimal() + " " + a.currency.code
}

// IsZero checks if the Amount is the zero value (no currency, no value).
// A real "0 ETH" amount is not zero in this sense; use Sign for that.
func (a Amount) IsZero() bool {
	return a.currency.IsZero()
}

// Sign returns -1, 0 or +1 for the numeric value.
func (a Amount) Sign() int {
	if a.value == nil {
		return 0
	}
	return a.value.Sign()
}

// Equals checks currency and value equality.
func (a Amount) Equals(other Amount) bool {
	if !a.currency.Equals(other.currency) {
		return false
	}
	return a.BaseUnits().Cmp(other.BaseUnits()) == 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
