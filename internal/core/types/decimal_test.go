package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_Arithmetic(t *testing.T) {
	a := NewQuantityFromFloat64(10.5)
	b := NewQuantityFromFloat64(4.25)

	assert.Equal(t, NewQuantityFromFloat64(14.75), a.Add(b))
	assert.Equal(t, NewQuantityFromFloat64(6.25), a.Sub(b))
	assert.Equal(t, a, a.Neg().Neg())
	assert.True(t, a.Sub(a).IsZero())
	assert.True(t, b.Sub(a).IsNegative())
}

func TestQuantity_String(t *testing.T) {
	assert.Equal(t, "10.5000", NewQuantityFromFloat64(10.5).String())
	assert.Equal(t, "-3.0000", NewQuantityFromFloat64(-3).String())
	assert.Equal(t, "0.0001", Quantity(1).String())
}

func TestQuantity_JSONRoundTrip(t *testing.T) {
	original := NewQuantityFromFloat64(12.3456)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, "12.3456", string(data))

	var parsed Quantity
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)

	// String input is accepted too
	require.NoError(t, json.Unmarshal([]byte(`"7.25"`), &parsed))
	assert.Equal(t, NewQuantityFromFloat64(7.25), parsed)
}

func TestQuantity_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Quantity
		wantErr bool
	}{
		{name: "plain", input: "12.5", want: Quantity(125_000)},
		{name: "negative", input: "-3", want: Quantity(-30_000)},
		{name: "exponent form", input: "1.5e2", want: Quantity(1_500_000)},
		{name: "extra digits truncated", input: "1.23456", want: Quantity(12_345)},
		{name: "garbage rejected", input: "12.5kg", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "exceeds scaled int64 range", input: "1900000000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewQuantityFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantity_UnmarshalRejectsOutOfRange(t *testing.T) {
	var q Quantity
	err := json.Unmarshal([]byte("1900000000000000"), &q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestQuantity_DecimalRoundTrip(t *testing.T) {
	q := NewQuantityFromFloat64(42.1234)

	back, err := NewQuantityFromDecimal(q.Decimal())
	require.NoError(t, err)
	assert.Equal(t, q, back)
	assert.Equal(t, "42.1234", q.Decimal().StringFixed(4))
}
