package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatchPaymentID(t *testing.T) {
	filter := NewTxFilter()
	filter.PaymentIDs = []string{"", "1234567890abcdef"}

	assert.True(t, filter.Match(&Transaction{}))
	assert.True(t, filter.Match(&Transaction{PaymentID: ptr("0000000000000000")}))
	assert.True(t, filter.Match(&Transaction{PaymentID: ptr("1234567890abcdef")}))
	assert.False(t, filter.Match(&Transaction{PaymentID: ptr("fedcba0987654321")}))

	filter.PaymentIDs = []string{"fedcba0987654321"}
	assert.False(t, filter.Match(&Transaction{}))
}

func TestFilterMatchEmptySets(t *testing.T) {
	filter := NewTxFilter()
	filter.PaymentIDs = []string{}

	assert.True(t, filter.Match(&Transaction{}))
	assert.True(t, filter.Match(&Transaction{Height: ptr[uint64](1)}))
}
