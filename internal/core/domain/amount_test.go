package domain_test

import (
	"math/big"
	"testing"

	"transfer_tracker/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name          string
		currency      domain.Currency
		input         string
		wantErr       error
		wantBaseUnits string
		wantDecimal   string
	}{
		{
			name:          "BTC fraction",
			currency:      domain.CurrencyBTC,
			input:         "0.0001",
			wantBaseUnits: "10000",
			wantDecimal:   "0.0001",
		},
		{
			name:          "ETH whole",
			currency:      domain.CurrencyETH,
			input:         "2",
			wantBaseUnits: "2000000000000000000",
			wantDecimal:   "2",
		},
		{
			name:          "Leading dot",
			currency:      domain.CurrencyETH,
			input:         ".5",
			wantBaseUnits: "500000000000000000",
			wantDecimal:   "0.5",
		},
		{
			name:          "Zero",
			currency:      domain.CurrencyETH,
			input:         "0",
			wantBaseUnits: "0",
			wantDecimal:   "0",
		},
		{
			name:          "Smallest BTC unit",
			currency:      domain.CurrencyBTC,
			input:         "0.00000001",
			wantBaseUnits: "1",
			wantDecimal:   "0.00000001",
		},
		{
			name:     "Too many fractional digits",
			currency: domain.CurrencyBTC,
			input:    "0.000000001",
			wantErr:  domain.ErrInvalidAmountFormat,
		},
		{
			name:     "Negative",
			currency: domain.CurrencyETH,
			input:    "-1",
			wantErr:  domain.ErrInvalidAmountFormat,
		},
		{
			name:     "Trailing dot",
			currency: domain.CurrencyETH,
			input:    "1.",
			wantErr:  domain.ErrInvalidAmountFormat,
		},
		{
			name:     "Empty",
			currency: domain.CurrencyETH,
			input:    " ",
			wantErr:  domain.ErrInvalidAmountFormat,
		},
		{
			name:     "Missing currency",
			currency: domain.Currency{},
			input:    "1",
			wantErr:  domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseAmount(tt.currency, tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBaseUnits, got.BaseUnits().String())
			assert.Equal(t, tt.wantDecimal, got.Decimal())
		})
	}
}

func TestNewAmount_Validation(t *testing.T) {
	_, err := domain.NewAmount(domain.CurrencyETH, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = domain.NewAmount(domain.CurrencyETH, big.NewInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = domain.NewAmount(domain.Currency{}, big.NewInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestAmount_Equals(t *testing.T) {
	a, err := domain.ParseAmount(domain.CurrencyETH, "1.5")
	require.NoError(t, err)
	b, err := domain.NewAmount(domain.CurrencyETH, big.NewInt(1_500_000_000_000_000_000))
	require.NoError(t, err)
	c, err := domain.ParseAmount(domain.CurrencyBTC, "1.5")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, "1.5 ETH", a.String())
	assert.True(t, domain.Amount{}.IsZero())
	assert.Equal(t, "", domain.Amount{}.String())
}

func TestComputeFee(t *testing.T) {
	gasPrice, err := domain.NewWeiValue("0x3b9aca00") // 1 gwei
	require.NoError(t, err)

	fee := domain.ComputeFee(21000, gasPrice)

	assert.Equal(t, "ETH", fee.Currency().Code())
	assert.Equal(t, "21000000000000", fee.BaseUnits().String())
	assert.Equal(t, "0.000021", fee.Decimal())
}

func TestNewCurrency(t *testing.T) {
	c, err := domain.NewCurrency(" usdc ", "USD Coin", 6)
	require.NoError(t, err)
	assert.Equal(t, "USDC", c.Code())
	assert.Equal(t, "USD Coin", c.Name())
	assert.Equal(t, uint8(6), c.Decimals())

	_, err = domain.NewCurrency("", "", 6)
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)

	eth, ok := domain.LookupCurrency("eth")
	require.True(t, ok)
	assert.True(t, eth.Equals(domain.CurrencyETH))

	_, ok = domain.LookupCurrency("DOGE")
	assert.False(t, ok)
}
