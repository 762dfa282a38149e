package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

func TestSignedBalance(t *testing.T) {
	debit := decimal.NewFromInt(500)
	credit := decimal.NewFromInt(200)

	assert.True(t, decimal.NewFromInt(300).Equal(SignedBalance(debit, credit, domain.NormalDebit)),
		"debit-normal accounts grow with debits")
	assert.True(t, decimal.NewFromInt(-300).Equal(SignedBalance(debit, credit, domain.NormalCredit)),
		"credit-normal accounts shrink with debits")
}

func TestWeightedAverageCost(t *testing.T) {
	// 10 units at 100, receive 10 units worth 3000 total -> avg 200
	avg := WeightedAverageCost(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(10), decimal.NewFromInt(3000),
	)
	assert.True(t, decimal.NewFromInt(200).Equal(avg), "expected avg 200, got %s", avg)

	// First purchase into an empty product uses the line total directly
	avg = WeightedAverageCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(4), decimal.NewFromInt(1000),
	)
	assert.True(t, decimal.NewFromInt(250).Equal(avg), "expected avg 250, got %s", avg)

	// Zero combined quantity resets the average to zero
	avg = WeightedAverageCost(
		decimal.NewFromInt(5), decimal.NewFromInt(80),
		decimal.NewFromInt(-5), decimal.NewFromInt(0),
	)
	assert.True(t, avg.IsZero(), "expected zero avg when combined quantity is zero, got %s", avg)

	// Receiving onto negative stock resets too instead of dividing by a
	// negative quantity
	avg = WeightedAverageCost(
		decimal.NewFromInt(-10), decimal.NewFromInt(100),
		decimal.NewFromInt(4), decimal.NewFromInt(1000),
	)
	assert.True(t, avg.IsZero(), "expected zero avg when combined quantity is negative, got %s", avg)
}

func TestEntriesBalance(t *testing.T) {
	balanced := []domain.JournalEntry{
		{Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}
	assert.True(t, EntriesBalance(balanced).IsZero(), "balanced lines should sum to zero")

	unbalanced := []domain.JournalEntry{
		{Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: decimal.NewFromInt(60)},
	}
	assert.True(t, decimal.NewFromInt(40).Equal(EntriesBalance(unbalanced)),
		"unbalanced lines should report the debit surplus")
}
