package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
	"github.com/ratbook/ratbook_backend/internal/models"
	"github.com/ratbook/ratbook_backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	productRepo portsrepo.ProductRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction and
// journal entry data.
func newPgxTransactionRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Date:          d.Date,
		DueDate:       d.DueDate,
		Description:   d.Description,
		Kind:          d.Kind,
		ProofFile:     d.ProofFile,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// SaveTransaction persists the transaction header, applies product balance
// updates and inserts the journal entries, all inside one database
// transaction. Any failure rolls back everything.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, products []domain.Product) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once the transaction is committed

	modelTxn := toModelTransaction(txn)

	headerQuery := `
		INSERT INTO transactions (transaction_id, date, due_date, description, kind, proof_file, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	var proofFile sql.NullString
	if modelTxn.ProofFile != "" {
		proofFile = sql.NullString{String: modelTxn.ProofFile, Valid: true}
	}

	_, err = tx.Exec(ctx, headerQuery,
		modelTxn.TransactionID,
		modelTxn.Date,
		modelTxn.DueDate,
		modelTxn.Description,
		modelTxn.Kind,
		proofFile,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if len(products) > 0 {
		productIDs := make([]string, len(products))
		for i, p := range products {
			productIDs[i] = p.ProductID
		}
		if _, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock products for update", err)
		}
		if err := r.productRepo.UpdateProductBalancesInTx(ctx, tx, products); err != nil {
			return apperrors.NewAppError(500, "failed to update product balances", err)
		}
	}

	entryQuery := `
		INSERT INTO journal_entries (entry_id, transaction_id, account_id, debit, credit, sub_ledger_name, product_id, quantity, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, entry := range txn.Entries {
		var subName, productID sql.NullString
		if entry.SubLedgerName != "" {
			subName = sql.NullString{String: entry.SubLedgerName, Valid: true}
		}
		if entry.ProductID != "" {
			productID = sql.NullString{String: entry.ProductID, Valid: true}
		}
		batch.Queue(entryQuery,
			entry.EntryID,
			txn.TransactionID,
			entry.AccountID,
			entry.Debit,
			entry.Credit,
			subName,
			productID,
			entry.Quantity,
			modelTxn.CreatedAt,
			modelTxn.CreatedBy,
			modelTxn.LastUpdatedAt,
			modelTxn.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for transaction "+modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

const entryColumns = `
	e.entry_id, e.transaction_id, e.account_id, e.debit, e.credit,
	COALESCE(e.sub_ledger_name, ''), COALESCE(e.product_id, ''), e.quantity,
	a.code, a.name, a.category, COALESCE(p.name, '')`

const entryJoins = `
	FROM journal_entries e
	JOIN accounts a ON e.account_id = a.account_id
	LEFT JOIN products p ON e.product_id = p.product_id`

func scanEntry(rows pgx.Rows) (models.JournalEntry, error) {
	var e models.JournalEntry
	err := rows.Scan(
		&e.EntryID,
		&e.TransactionID,
		&e.AccountID,
		&e.Debit,
		&e.Credit,
		&e.SubLedgerName,
		&e.ProductID,
		&e.Quantity,
		&e.AccountCode,
		&e.AccountName,
		&e.AccountCategory,
		&e.ProductName,
	)
	return e, err
}

// FindTransactionByID retrieves a transaction header with its entries.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	headerQuery := `
		SELECT transaction_id, date, due_date, description, kind, COALESCE(proof_file, ''), created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, headerQuery, transactionID).Scan(
		&m.TransactionID,
		&m.Date,
		&m.DueDate,
		&m.Description,
		&m.Kind,
		&m.ProofFile,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	entriesByTxn, err := r.findEntriesByTransactionIDs(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}

	domainTxn := m.ToDomain()
	domainTxn.Entries = entriesByTxn[transactionID]
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) findEntriesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.JournalEntry, error) {
	if len(transactionIDs) == 0 {
		return map[string][]domain.JournalEntry{}, nil
	}

	query := `SELECT ` + entryColumns + entryJoins + `
		WHERE e.transaction_id = ANY($1)
		ORDER BY e.created_at, e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.JournalEntry)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		grouped[e.TransactionID] = append(grouped[e.TransactionID], e.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	return grouped, nil
}

// ListTransactions retrieves a date-filtered, newest-first page of
// transactions with their entries using token-based pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, start, end *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, date, due_date, description, kind, COALESCE(proof_file, ''), created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE 1=1
	`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	args := []interface{}{}
	query := baseQuery
	if start != nil {
		args = append(args, *start)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	headers := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.Date,
			&m.DueDate,
			&m.Description,
			&m.Kind,
			&m.ProofFile,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var newNextToken *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
		headers = headers[:limit]
	}

	transactionIDs := make([]string, len(headers))
	for i, h := range headers {
		transactionIDs[i] = h.TransactionID
	}

	entriesByTxn, err := r.findEntriesByTransactionIDs(ctx, transactionIDs)
	if err != nil {
		return nil, nil, err
	}

	transactions := make([]domain.Transaction, len(headers))
	for i, h := range headers {
		txn := h.ToDomain()
		txn.Entries = entriesByTxn[h.TransactionID]
		transactions[i] = txn
	}

	return transactions, newNextToken, nil
}

// DeleteTransaction removes a transaction's entries then its header in one
// database transaction. Product balances are left as they are.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries for transaction "+transactionID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
