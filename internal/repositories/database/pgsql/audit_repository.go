package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	"github.com/finstock/finstock_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const auditColumns = `audit_id, product_variation_id, product_storage_id, quantity_before, quantity_after, reason, ref_kind, ref_id, notes, created_at, created_by`

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the product audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func toDomainAudit(m models.ProductAuditTrail) domain.ProductAuditTrail {
	ref := domain.NoRef()
	if m.RefID != nil {
		ref = domain.EntityRef{Kind: domain.EntityRefKind(m.RefKind), ID: *m.RefID}
	}
	return domain.ProductAuditTrail{
		AuditID:            m.AuditID,
		ProductVariationID: m.ProductVariationID,
		ProductStorageID:   m.ProductStorageID,
		QuantityBefore:     m.QuantityBefore,
		QuantityAfter:      m.QuantityAfter,
		Reason:             domain.ReconciliationReason(m.Reason),
		Ref:                ref,
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
		CreatedBy:          m.CreatedBy,
	}
}

func scanAuditRow(row pgx.Row) (models.ProductAuditTrail, error) {
	var m models.ProductAuditTrail
	err := row.Scan(
		&m.AuditID,
		&m.ProductVariationID,
		&m.ProductStorageID,
		&m.QuantityBefore,
		&m.QuantityAfter,
		&m.Reason,
		&m.RefKind,
		&m.RefID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// RecordReconciliation locks the product storage row, verifies the caller's
// quantity snapshot, updates the stored quantity and appends the audit entry in
// one transaction. A snapshot that no longer matches rejects the correction so
// a stale count never overwrites a fresher one.
func (r *PgxAuditRepository) RecordReconciliation(ctx context.Context, audit domain.ProductAuditTrail) (*domain.ProductAuditTrail, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var currentQty decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT quantity FROM product_storages WHERE product_storage_id = $1 FOR UPDATE;
	`, audit.ProductStorageID).Scan(&currentQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product storage %s", apperrors.ErrNotFound, audit.ProductStorageID)
		}
		return nil, fmt.Errorf("failed to lock product storage %s: %w", audit.ProductStorageID, err)
	}

	if !currentQty.Equal(audit.QuantityBefore) {
		return nil, fmt.Errorf("%w: stored quantity %s does not match reported quantity %s for storage %s",
			apperrors.ErrConflict, currentQty.String(), audit.QuantityBefore.String(), audit.ProductStorageID)
	}

	_, err = tx.Exec(ctx, `
		UPDATE product_storages SET quantity = $2 WHERE product_storage_id = $1;
	`, audit.ProductStorageID, audit.QuantityAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to update quantity of product storage %s: %w", audit.ProductStorageID, err)
	}

	var refID *string
	if audit.Ref.IsSet() {
		id := audit.Ref.ID
		refID = &id
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO product_audit_trails (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		audit.AuditID,
		audit.ProductVariationID,
		audit.ProductStorageID,
		audit.QuantityBefore,
		audit.QuantityAfter,
		string(audit.Reason),
		string(audit.Ref.Kind),
		refID,
		audit.Notes,
		audit.CreatedAt,
		audit.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert audit trail %s: %w", audit.AuditID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &audit, nil
}

// FindAuditByID retrieves a single audit trail entry.
func (r *PgxAuditRepository) FindAuditByID(ctx context.Context, auditID string) (*domain.ProductAuditTrail, error) {
	query := `SELECT ` + auditColumns + ` FROM product_audit_trails WHERE audit_id = $1;`

	m, err := scanAuditRow(r.Pool.QueryRow(ctx, query, auditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find audit by ID %s: %w", auditID, err)
	}

	d := toDomainAudit(m)
	return &d, nil
}

// ListAuditsByStorage retrieves audit entries for a storage row, newest first.
func (r *PgxAuditRepository) ListAuditsByStorage(ctx context.Context, productStorageID string, limit int, offset int) ([]domain.ProductAuditTrail, error) {
	return r.listAudits(ctx, "product_storage_id", productStorageID, limit, offset)
}

// ListAuditsByVariation retrieves audit entries for a variation, newest first.
func (r *PgxAuditRepository) ListAuditsByVariation(ctx context.Context, productVariationID string, limit int, offset int) ([]domain.ProductAuditTrail, error) {
	return r.listAudits(ctx, "product_variation_id", productVariationID, limit, offset)
}

func (r *PgxAuditRepository) listAudits(ctx context.Context, column, value string, limit int, offset int) ([]domain.ProductAuditTrail, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s FROM product_audit_trails
		WHERE %s = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`, auditColumns, column)

	rows, err := r.Pool.Query(ctx, query, value, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trails by %s: %w", column, err)
	}
	defer rows.Close()

	audits := []domain.ProductAuditTrail{}
	for rows.Next() {
		m, err := scanAuditRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit trail row: %w", err)
		}
		audits = append(audits, toDomainAudit(m))
	}
	return audits, rows.Err()
}
