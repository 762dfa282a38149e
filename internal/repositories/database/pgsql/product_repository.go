package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
	"github.com/ratbook/ratbook_backend/internal/models"
)

type PgxProductRepository struct {
	pool *pgxpool.Pool
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func toModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID: d.ProductID,
		Code:      d.Code,
		Name:      d.Name,
		Quantity:  d.Quantity,
		AvgCost:   d.AvgCost,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

const productColumns = `product_id, code, name, quantity, avg_cost, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Code,
		&m.Name,
		&m.Quantity,
		&m.AvgCost,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	modelProd := toModelProduct(product)

	query := `
		INSERT INTO products (product_id, code, name, quantity, avg_cost, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		modelProd.ProductID,
		modelProd.Code,
		modelProd.Name,
		modelProd.Quantity,
		modelProd.AvgCost,
		modelProd.CreatedAt,
		modelProd.CreatedBy,
		modelProd.LastUpdatedAt,
		modelProd.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with code %s already exists", apperrors.ErrDuplicate, modelProd.Code)
		}
		return fmt.Errorf("failed to save product %s: %w", modelProd.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	modelProd, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	domainProd := modelProd.ToDomain()
	return &domainProd, nil
}

// ListProducts retrieves every product ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		modelProd, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, modelProd.ToDomain())
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}

	return products, nil
}

// UpdateProduct updates an existing product, including direct quantity and
// cost edits.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	modelProd := toModelProduct(product)

	query := `
		UPDATE products
		SET code = $2, name = $3, quantity = $4, avg_cost = $5, last_updated_at = $6, last_updated_by = $7
		WHERE product_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelProd.ProductID,
		modelProd.Code,
		modelProd.Name,
		modelProd.Quantity,
		modelProd.AvgCost,
		modelProd.LastUpdatedAt,
		modelProd.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with code %s already exists", apperrors.ErrDuplicate, modelProd.Code)
		}
		return fmt.Errorf("failed to execute update product %s: %w", modelProd.ProductID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteProduct removes a product.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE product_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: product %s is referenced by journal entries", apperrors.ErrValidation, productID)
		}
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// FindProductsByIDsForUpdate selects products and locks them for update
// within the given transaction.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock products for update: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		modelProd, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked product row: %w", err)
		}
		productsMap[modelProd.ProductID] = modelProd.ToDomain()
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked product rows: %w", err)
	}

	for _, id := range productIDs {
		if _, ok := productsMap[id]; !ok {
			return nil, fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, id)
		}
	}

	return productsMap, nil
}

// UpdateProductBalancesInTx applies new quantity and average cost values to
// multiple products within the given transaction.
func (r *PgxProductRepository) UpdateProductBalancesInTx(ctx context.Context, tx pgx.Tx, products []domain.Product) error {
	query := `
		UPDATE products
		SET quantity = $2, avg_cost = $3, last_updated_at = $4, last_updated_by = $5
		WHERE product_id = $1;
	`
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query, p.ProductID, p.Quantity, p.AvgCost, p.LastUpdatedAt, p.LastUpdatedBy)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute product balance batch: %w", err)
	}
	return nil
}
