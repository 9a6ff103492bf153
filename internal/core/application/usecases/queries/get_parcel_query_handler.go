package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetParcelQueryHandler retrieves one parcel and its contents. Items whose
// owning order was soft-deleted are included, flagged through OrderDeleted,
// because the physical shipment still contains them.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelQueryHandler creates a handler for the parcel contents view.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle executes the query. A parcel owned by a different user is reported
// as not found, so the view never confirms foreign parcel identifiers.
func (h GetParcelQueryHandler) Handle(
	ctx context.Context,
	query GetParcelQuery,
) (GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelQueryResponse{}, err
	}

	resp, err := h.fetchParcel(ctx, query)
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	if err = h.fetchContents(ctx, query.ParcelID(), &resp); err != nil {
		return GetParcelQueryResponse{}, err
	}

	return resp, nil
}

func (h GetParcelQueryHandler) fetchParcel(
	ctx context.Context,
	query GetParcelQuery,
) (GetParcelQueryResponse, error) {
	var (
		resp      GetParcelQueryResponse
		id        uuid.UUID
		updatedAt *time.Time
		weight    decimal.NullDecimal
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, tracking_number, carrier_slug, label, status,
			tracking_updated_at, weight_kg, archived
		FROM parcels
		WHERE id = ? AND user_id = ?
	`, query.ParcelID().Bytes(), query.UserID().Bytes()).Row()

	err := row.Scan(
		&id, &resp.TrackingNumber, &resp.CarrierSlug, &resp.Label, &resp.Status,
		&updatedAt, &weight, &resp.Archived,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetParcelQueryResponse{}, errs.NewObjectNotFoundError("parcelId", query.ParcelID().String())
	}
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetParcelQueryResponse{}, err
	}
	resp.ID = parcelID
	resp.TrackingUpdatedAt = updatedAt
	if weight.Valid {
		w, wErr := kernel.NewWeight(weight.Decimal)
		if wErr != nil {
			return GetParcelQueryResponse{}, wErr
		}
		resp.WeightKg = &w
	}
	resp.Contents = make([]ParcelContentResponse, 0)

	return resp, nil
}

func (h GetParcelQueryHandler) fetchContents(
	ctx context.Context,
	parcelID kernel.UUID,
	resp *GetParcelQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			pi.order_item_id, oi.name, pi.quantity,
			o.id, o.platform, o.external_number, o.deleted_at IS NOT NULL
		FROM parcel_items pi
		JOIN order_items oi ON oi.id = pi.order_item_id
		JOIN orders o ON o.id = oi.order_id
		WHERE pi.parcel_id = ?
		ORDER BY oi.name
	`, parcelID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			content ParcelContentResponse
			itemID  uuid.UUID
			orderID uuid.UUID
		)

		if err = rows.Scan(
			&itemID, &content.ItemName, &content.Quantity,
			&orderID, &content.OrderPlatform, &content.OrderExternalNo, &content.OrderDeleted,
		); err != nil {
			return err
		}

		iid, idErr := kernel.UUIDFromBytes(itemID[:])
		if idErr != nil {
			return idErr
		}
		oid, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return idErr
		}
		content.OrderItemID = iid
		content.OrderID = oid

		resp.Contents = append(resp.Contents, content)
	}

	return rows.Err()
}
