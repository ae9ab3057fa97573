package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmountWithDecimals(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int32
		want     string
	}{
		{"", 9, "0"},
		{"0", 9, "0"},
		{"100000", 3, "100"},
		{"50000", 3, "50"},
		{"123456", 3, "123.45"},
		{"1500000", 3, "1.50K"},
		{"2500000000", 3, "2.50M"},
		{"5", 3, "0.005"},
		{"not-a-number", 3, "not-a-number"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmountWithDecimals(tt.amount, tt.decimals), "amount=%s decimals=%d", tt.amount, tt.decimals)
	}
}

func TestGetDisplayAddress(t *testing.T) {
	assert.Equal(t, "So1111...1112", GetDisplayAddress("So11111111111111111111111111111111111111112"))
	assert.Equal(t, "short", GetDisplayAddress("short"))
}
