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

type PgxPayrollRunRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPayrollRunRepository creates a new repository for payroll run data.
func NewPgxPayrollRunRepository(pool *pgxpool.Pool) portsrepo.PayrollRunRepositoryFacade {
	return &PgxPayrollRunRepository{pool: pool}
}

const payrollRunColumns = `payroll_run_id, name, pay_date, status, payment_currency, total_amount, total_fee, item_count, created_at, created_by, last_updated_at, last_updated_by`

func scanPayrollRun(row pgx.CollectableRow) (domain.PayrollRun, error) {
	var run domain.PayrollRun
	err := row.Scan(
		&run.PayrollRunID,
		&run.Name,
		&run.PayDate,
		&run.Status,
		&run.PaymentCurrency,
		&run.TotalAmount,
		&run.TotalFee,
		&run.ItemCount,
		&run.CreatedAt,
		&run.CreatedBy,
		&run.LastUpdatedAt,
		&run.LastUpdatedBy,
	)
	return run, err
}

// SavePayrollRun persists a run and its items in one transaction.
func (r *PgxPayrollRunRepository) SavePayrollRun(ctx context.Context, run domain.PayrollRun) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for payroll run: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	runQuery := `
		INSERT INTO payroll_runs (` + payrollRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, runQuery,
		run.PayrollRunID,
		run.Name,
		run.PayDate,
		run.Status,
		run.PaymentCurrency,
		run.TotalAmount,
		run.TotalFee,
		run.ItemCount,
		run.CreatedAt,
		run.CreatedBy,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("payroll run %s: %w", run.PayrollRunID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save payroll run %s: %w", run.PayrollRunID, err)
	}

	itemQuery := `
		INSERT INTO payroll_items (item_id, payroll_run_id, employee_id, amount, currency_code, beneficiary_id)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range run.Items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ItemID,
			item.PayrollRunID,
			item.EmployeeID,
			item.Amount,
			item.CurrencyCode,
			item.BeneficiaryID,
		); err != nil {
			return fmt.Errorf("failed to save payroll item %s: %w", item.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit payroll run %s: %w", run.PayrollRunID, err)
	}
	return nil
}

// UpdatePayrollRun updates a run's mutable fields. Items are immutable once
// the run is created.
func (r *PgxPayrollRunRepository) UpdatePayrollRun(ctx context.Context, run domain.PayrollRun) error {
	query := `
		UPDATE payroll_runs
		SET status = $2, payment_currency = $3, total_amount = $4, total_fee = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE payroll_run_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		run.PayrollRunID,
		run.Status,
		run.PaymentCurrency,
		run.TotalAmount,
		run.TotalFee,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run %s: %w", run.PayrollRunID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payroll run %s: %w", run.PayrollRunID, apperrors.ErrNotFound)
	}
	return nil
}

// FindPayrollRunByID retrieves a run with its items.
func (r *PgxPayrollRunRepository) FindPayrollRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	runQuery := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE payroll_run_id = $1;`
	rows, err := r.pool.Query(ctx, runQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll run %s: %w", runID, err)
	}
	run, err := pgx.CollectOneRow(rows, scanPayrollRun)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payroll run %s: %w", runID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find payroll run %s: %w", runID, err)
	}

	itemQuery := `
		SELECT item_id, payroll_run_id, employee_id, amount, currency_code, beneficiary_id
		FROM payroll_items
		WHERE payroll_run_id = $1
		ORDER BY item_id;
	`
	itemRows, err := r.pool.Query(ctx, itemQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items for run %s: %w", runID, err)
	}
	defer itemRows.Close()

	items, err := pgx.CollectRows(itemRows, func(row pgx.CollectableRow) (domain.PayrollItem, error) {
		var item domain.PayrollItem
		err := row.Scan(
			&item.ItemID,
			&item.PayrollRunID,
			&item.EmployeeID,
			&item.Amount,
			&item.CurrencyCode,
			&item.BeneficiaryID,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payroll items for run %s: %w", runID, err)
	}
	run.Items = items

	return &run, nil
}

// ListPayrollRuns retrieves runs without items, newest first.
func (r *PgxPayrollRunRepository) ListPayrollRuns(ctx context.Context, limit, offset int) ([]domain.PayrollRun, error) {
	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll runs: %w", err)
	}
	defer rows.Close()

	runs, err := pgx.CollectRows(rows, scanPayrollRun)
	if err != nil {
		return nil, fmt.Errorf("failed to scan payroll runs: %w", err)
	}
	return runs, nil
}
