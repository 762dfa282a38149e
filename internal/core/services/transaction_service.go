package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/utils/accounting"
)

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	productRepo     portsrepo.ProductRepositoryFacade
}

// NewTransactionService creates the service handling transaction posting.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		productRepo:     productRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction posts a transaction. It validates the referenced accounts,
// computes the inventory effects of purchase and sale lines, and hands
// everything to the repository for atomic persistence. A debit/credit
// imbalance is accepted but logged.
func (s *transactionService) CreateTransaction(ctx context.Context, req portssvc.CreateTransactionData, userID string) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx)

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: transaction requires at least one line", apperrors.ErrValidation)
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          req.Date,
		DueDate:       req.DueDate,
		Description:   req.Description,
		Kind:          req.Kind,
		ProofFile:     req.ProofFile,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	accountIDs := make([]string, 0, len(req.Lines))
	seen := map[string]bool{}
	for _, line := range req.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for transaction lines")
		return nil, err
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
	}

	txn.Entries = make([]domain.JournalEntry, len(req.Lines))
	for i, line := range req.Lines {
		txn.Entries[i] = domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     line.AccountID,
			Debit:         line.Debit,
			Credit:        line.Credit,
			SubLedgerName: line.SubLedgerName,
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
		}
	}

	// Unbalanced postings are stored as-is; the imbalance is only flagged.
	if imbalance := accounting.EntriesBalance(txn.Entries); !imbalance.IsZero() {
		logger.Warn("Transaction lines do not balance",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("imbalance", imbalance.String()),
		)
	}

	products, err := s.applyInventoryEffects(ctx, req, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, products); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Kind)),
		slog.Int("lines", len(txn.Entries)),
	)

	return s.transactionRepo.FindTransactionByID(ctx, txn.TransactionID)
}

// applyInventoryEffects computes the post-transaction state of every product
// touched by purchase or sale lines. Purchases re-average the cost using the
// client-sent line total; sales only decrement quantity. Products are
// processed sequentially so repeated lines compound.
func (s *transactionService) applyInventoryEffects(ctx context.Context, req portssvc.CreateTransactionData, userID string, now time.Time) ([]domain.Product, error) {
	if req.Kind != domain.KindPurchase && req.Kind != domain.KindSale {
		return nil, nil
	}

	state := make(map[string]*domain.Product)
	order := []string{}

	for _, line := range req.Lines {
		if line.ProductID == "" || !line.Quantity.IsPositive() {
			continue
		}

		// Purchase lines only touch inventory when the client sent a cost
		// hint for the product; without one the product is left alone.
		total := decimal.Zero
		if req.Kind == domain.KindPurchase {
			found := false
			for _, hint := range req.Inventory {
				if hint.ProductID == line.ProductID {
					total = hint.Total
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}

		product, ok := state[line.ProductID]
		if !ok {
			fetched, err := s.productRepo.FindProductByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: product %s not found", apperrors.ErrValidation, line.ProductID)
				}
				s.LogError(ctx, err, "Failed to fetch product for inventory update", slog.String("product_id", line.ProductID))
				return nil, err
			}
			product = fetched
			state[line.ProductID] = product
			order = append(order, line.ProductID)
		}

		switch req.Kind {
		case domain.KindPurchase:
			product.AvgCost = accounting.WeightedAverageCost(product.Quantity, product.AvgCost, line.Quantity, total)
			product.Quantity = product.Quantity.Add(line.Quantity)
		case domain.KindSale:
			// No guard against negative stock; quantity simply goes down.
			product.Quantity = product.Quantity.Sub(line.Quantity)
		}

		product.LastUpdatedAt = now
		product.LastUpdatedBy = userID
	}

	products := make([]domain.Product, 0, len(order))
	for _, id := range order {
		products = append(products, *state[id])
	}
	return products, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, start, end *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	transactions, newToken, err := s.transactionRepo.ListTransactions(ctx, start, end, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, newToken, nil
}

// DeleteTransaction removes the transaction and its entries. Product
// balances affected by the original posting are not re-adjusted.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
