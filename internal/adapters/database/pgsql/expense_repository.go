package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portsrepo "github.com/paylinear/payroll_backend/internal/core/ports/repositories"
)

type PgxExpenseBatchRepository struct {
	pool *pgxpool.Pool
}

// NewPgxExpenseBatchRepository creates a new repository for expense batch data.
func NewPgxExpenseBatchRepository(pool *pgxpool.Pool) portsrepo.ExpenseBatchRepositoryFacade {
	return &PgxExpenseBatchRepository{pool: pool}
}

const expenseBatchColumns = `expense_batch_id, name, status, payment_currency, total_amount, total_fee, item_count, created_at, created_by, last_updated_at, last_updated_by`

func scanExpenseBatch(row pgx.CollectableRow) (domain.ExpenseBatch, error) {
	var batch domain.ExpenseBatch
	err := row.Scan(
		&batch.ExpenseBatchID,
		&batch.Name,
		&batch.Status,
		&batch.PaymentCurrency,
		&batch.TotalAmount,
		&batch.TotalFee,
		&batch.ItemCount,
		&batch.CreatedAt,
		&batch.CreatedBy,
		&batch.LastUpdatedAt,
		&batch.LastUpdatedBy,
	)
	return batch, err
}

// SaveExpenseBatch persists a batch and its items in one transaction.
func (r *PgxExpenseBatchRepository) SaveExpenseBatch(ctx context.Context, batch domain.ExpenseBatch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for expense batch: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	batchQuery := `
		INSERT INTO expense_batches (` + expenseBatchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, batchQuery,
		batch.ExpenseBatchID,
		batch.Name,
		batch.Status,
		batch.PaymentCurrency,
		batch.TotalAmount,
		batch.TotalFee,
		batch.ItemCount,
		batch.CreatedAt,
		batch.CreatedBy,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("expense batch %s: %w", batch.ExpenseBatchID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save expense batch %s: %w", batch.ExpenseBatchID, err)
	}

	itemQuery := `
		INSERT INTO expense_items (item_id, expense_batch_id, employee_id, description, amount, currency_code)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range batch.Items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ItemID,
			item.ExpenseBatchID,
			item.EmployeeID,
			item.Description,
			item.Amount,
			item.CurrencyCode,
		); err != nil {
			return fmt.Errorf("failed to save expense item %s: %w", item.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit expense batch %s: %w", batch.ExpenseBatchID, err)
	}
	return nil
}

// UpdateExpenseBatch updates a batch's mutable fields. Items are immutable
// once the batch is created.
func (r *PgxExpenseBatchRepository) UpdateExpenseBatch(ctx context.Context, batch domain.ExpenseBatch) error {
	query := `
		UPDATE expense_batches
		SET status = $2, payment_currency = $3, total_amount = $4, total_fee = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE expense_batch_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		batch.ExpenseBatchID,
		batch.Status,
		batch.PaymentCurrency,
		batch.TotalAmount,
		batch.TotalFee,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense batch %s: %w", batch.ExpenseBatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense batch %s: %w", batch.ExpenseBatchID, apperrors.ErrNotFound)
	}
	return nil
}

// FindExpenseBatchByID retrieves a batch with its items.
func (r *PgxExpenseBatchRepository) FindExpenseBatchByID(ctx context.Context, batchID string) (*domain.ExpenseBatch, error) {
	batchQuery := `SELECT ` + expenseBatchColumns + ` FROM expense_batches WHERE expense_batch_id = $1;`
	rows, err := r.pool.Query(ctx, batchQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense batch %s: %w", batchID, err)
	}
	batch, err := pgx.CollectOneRow(rows, scanExpenseBatch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find expense batch %s: %w", batchID, err)
	}

	itemQuery := `
		SELECT item_id, expense_batch_id, employee_id, description, amount, currency_code
		FROM expense_items
		WHERE expense_batch_id = $1
		ORDER BY item_id;
	`
	itemRows, err := r.pool.Query(ctx, itemQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense items for batch %s: %w", batchID, err)
	}
	defer itemRows.Close()

	items, err := pgx.CollectRows(itemRows, func(row pgx.CollectableRow) (domain.ExpenseItem, error) {
		var item domain.ExpenseItem
		err := row.Scan(
			&item.ItemID,
			&item.ExpenseBatchID,
			&item.EmployeeID,
			&item.Description,
			&item.Amount,
			&item.CurrencyCode,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense items for batch %s: %w", batchID, err)
	}
	batch.Items = items

	return &batch, nil
}

// ListExpenseBatches retrieves batches without items, newest first.
func (r *PgxExpenseBatchRepository) ListExpenseBatches(ctx context.Context, limit, offset int) ([]domain.ExpenseBatch, error) {
	query := `SELECT ` + expenseBatchColumns + ` FROM expense_batches ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense batches: %w", err)
	}
	defer rows.Close()

	batches, err := pgx.CollectRows(rows, scanExpenseBatch)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense batches: %w", err)
	}
	return batches, nil
}
