package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatRoundOffWithPrecision(t *testing.T) {
	rounded, err := FloatRoundOffWithPrecision(2.667, 2)
	assert.Nil(t, err)
	assert.Equal(t, 2.67, rounded)

	rounded, err = FloatRoundOffWithPrecision(33.333333, 2)
	assert.Nil(t, err)
	assert.Equal(t, 33.33, rounded)

	rounded, err = FloatRoundOffWithPrecision(100.0, 2)
	assert.Nil(t, err)
	assert.Equal(t, 100.0, rounded)

	rounded, err = FloatRoundOffWithPrecision(0.005, 2)
	assert.Nil(t, err)
	assert.Equal(t, 0.01, rounded)
}

func TestStringValueIn(t *testing.T) {
	assert.True(t, StringValueIn("SP", []string{"SP", "RJ", "MG"}))
	assert.False(t, StringValueIn("BA", []string{"SP", "RJ", "MG"}))
	assert.False(t, StringValueIn("SP", []string{}))
}

func TestCleanSplitByDelimiter(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, CleanSplitByDelimiter("a, b, c", ","))
	assert.Equal(t, []string{"a", "b", "c"}, CleanSplitByDelimiter("a,b,c", ","))
	// Empty tokens from trailing or repeated delimiters are dropped.
	assert.Equal(t, []string{"a", "b"}, CleanSplitByDelimiter("a,,b,", ","))
}

func TestCapitalizeFirstLetter(t *testing.T) {
	assert.Equal(t, "Sao Paulo", CapitalizeFirstLetter("sao paulo"))
	assert.Equal(t, "Rio De Janeiro", CapitalizeFirstLetter("RIO DE JANEIRO"))
}

func TestGetSnakeCaseToTitleString(t *testing.T) {
	assert.Equal(t, "Order Status", GetSnakeCaseToTitleString("order_status"))
	assert.Equal(t, "Orders Over Time", GetSnakeCaseToTitleString("orders_over_time"))
	assert.Equal(t, "", GetSnakeCaseToTitleString(""))
}

func TestGenerateHashStringForStruct(t *testing.T) {
	type payload struct {
		Name   string   `json:"name"`
		States []string `json:"states"`
	}

	hash1, err := GenerateHashStringForStruct(payload{Name: "order_status", States: []string{"SP"}})
	assert.Nil(t, err)
	assert.NotEmpty(t, hash1)

	// Same payload must hash to the same string.
	hash2, err := GenerateHashStringForStruct(payload{Name: "order_status", States: []string{"SP"}})
	assert.Nil(t, err)
	assert.Equal(t, hash1, hash2)

	hash3, err := GenerateHashStringForStruct(payload{Name: "order_status", States: []string{"RJ"}})
	assert.Nil(t, err)
	assert.NotEqual(t, hash1, hash3)
}
