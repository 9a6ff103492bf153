package postgres

import (
	"context"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerReader implements ports.LedgerReader with raw SQL over the
// parcel_items ledger table. It reads across parcel aggregate boundaries,
// which the parcel repository deliberately does not do.
type GormLedgerReader struct {
	db *gorm.DB
}

// NewGormLedgerReader creates a ledger reader bound to the given session.
// Pass a transaction to make reads observe its uncommitted writes.
func NewGormLedgerReader(db *gorm.DB) *GormLedgerReader {
	return &GormLedgerReader{db: db}
}

// SumAllocated returns the total quantity of the item allocated across all
// parcels, excluding the given parcel when excludeParcelID is non-nil.
func (r *GormLedgerReader) SumAllocated(
	ctx context.Context,
	orderItemID kernel.UUID,
	excludeParcelID *kernel.UUID,
) (int, error) {
	if err := orderItemID.Validate(); err != nil {
		return 0, err
	}

	sql := `SELECT COALESCE(SUM(quantity), 0) FROM parcel_items WHERE order_item_id = ?`
	args := []any{orderItemID.Bytes()}
	if excludeParcelID != nil {
		if err := excludeParcelID.Validate(); err != nil {
			return 0, err
		}
		sql += ` AND parcel_id <> ?`
		args = append(args, excludeParcelID.Bytes())
	}

	var total int
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

// ParcelsHoldingItems returns, for every parcel holding any of the given
// items, the distinct orders whose items are allocated in it. The owner list
// covers the parcel's entire contents, not just the given items, so callers
// can tell exclusive parcels from shared ones.
func (r *GormLedgerReader) ParcelsHoldingItems(
	ctx context.Context,
	orderItemIDs []kernel.UUID,
) ([]services.ParcelOwnership, error) {
	ids, err := rawUUIDs(orderItemIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []services.ParcelOwnership{}, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT pi.parcel_id, oi.order_id
		FROM parcel_items pi
		JOIN order_items oi ON oi.id = pi.order_item_id
		WHERE pi.parcel_id IN (
			SELECT parcel_id FROM parcel_items WHERE order_item_id IN ?
		)
		ORDER BY pi.parcel_id
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := make([]services.ParcelOwnership, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var parcelID, orderID uuid.UUID
		if err = rows.Scan(&parcelID, &orderID); err != nil {
			return nil, err
		}

		pid, uuidErr := kernel.UUIDFromBytes(parcelID[:])
		if uuidErr != nil {
			return nil, uuidErr
		}
		oid, uuidErr := kernel.UUIDFromBytes(orderID[:])
		if uuidErr != nil {
			return nil, uuidErr
		}

		pos, ok := index[parcelID]
		if !ok {
			pos = len(holdings)
			index[parcelID] = pos
			holdings = append(holdings, services.ParcelOwnership{ParcelID: pid})
		}
		holdings[pos].OwnerOrderIDs = append(holdings[pos].OwnerOrderIDs, oid)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holdings, nil
}

// HasAllocationsForItems reports whether any ledger row still references one
// of the given items.
func (r *GormLedgerReader) HasAllocationsForItems(
	ctx context.Context,
	orderItemIDs []kernel.UUID,
) (bool, error) {
	ids, err := rawUUIDs(orderItemIDs)
	if err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return false, nil
	}

	var count int64
	if err = r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM (SELECT 1 FROM parcel_items WHERE order_item_id IN ? LIMIT 1) AS hit`, ids).
		Scan(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func rawUUIDs(ids []kernel.UUID) ([]uuid.UUID, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}
	return raw, nil
}
