package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// SignedBalance nets a debit/credit pair by the account's normal balance.
// Debit-normal accounts grow with debits, credit-normal accounts with credits.
func SignedBalance(debit, credit decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.NormalDebit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// WeightedAverageCost recalculates a product's average cost after receiving
// quantity at the given total purchase value. When the combined quantity is
// not positive the average resets to zero.
func WeightedAverageCost(currentQty, currentAvg, receivedQty, totalValue decimal.Decimal) decimal.Decimal {
	newQty := currentQty.Add(receivedQty)
	if !newQty.IsPositive() {
		return decimal.Zero
	}
	existingValue := currentQty.Mul(currentAvg)
	return existingValue.Add(totalValue).Div(newQty)
}

// EntriesBalance sums debits minus credits over a set of journal lines.
// A zero result means the transaction is balanced.
func EntriesBalance(lines []domain.JournalEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Debit).Sub(line.Credit)
	}
	return sum
}
