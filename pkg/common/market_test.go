package common

import (
	"testing"
)

func TestMarket_IsDerivative(t *testing.T) {
	tests := []struct {
		name       string
		marketType MarketType
		expected   bool
	}{
		{"spot", MarketTypeSpot, false},
		{"derivative", MarketTypeDerivative, true},
		{"binary option", MarketTypeBinaryOption, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Market{Type: tt.marketType}
			if got := m.IsDerivative(); got != tt.expected {
				t.Errorf("IsDerivative() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMarket_Fields(t *testing.T) {
	m := Market{
		ID:         "0xabc",
		Slug:       "inj-usdt",
		Type:       MarketTypeSpot,
		QuoteToken: Token{Denom: "peggy0xdac"},
	}

	fields := m.Fields()
	if len(fields) != 4 {
		t.Fatalf("Expected 4 fields, got %d", len(fields))
	}

	expected := map[string]string{
		"market_id":   "0xabc",
		"slug":        "inj-usdt",
		"type":        "spot",
		"quote_denom": "peggy0xdac",
	}
	for _, field := range fields {
		want, ok := expected[field.Key]
		if !ok {
			t.Errorf("Unexpected field %q", field.Key)
			continue
		}
		if field.String != want {
			t.Errorf("Field %q = %q, expected %q", field.Key, field.String, want)
		}
	}
}
