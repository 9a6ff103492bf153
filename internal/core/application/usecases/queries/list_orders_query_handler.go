package queries

import (
	"context"
	"time"

	"parceltracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves a user's orders with their items and the
// parcel placement of every item. Uses direct SQL for optimal read
// performance in the CQRS pattern: one query for orders, one for items and
// one batched ledger join, regardless of list size.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for the enriched order list.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are sorted by order date, newest first;
// parcel references within an item are sorted by tracking number.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, index, err := h.fetchOrders(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID.Bytes())
	}

	itemIndex, itemIDs, err := h.fetchItems(ctx, orderIDs, orders, index)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return orders, nil
	}

	if err = h.fetchPlacements(ctx, itemIDs, orders, itemIndex); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h ListOrdersQueryHandler) fetchOrders(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, map[uuid.UUID]int, error) {
	sql := `
		SELECT
			id, platform, external_number, order_date, protection_end_date,
			price_original, currency_original, price_final_base,
			is_price_estimated, comment, archived, deleted_at
		FROM orders
		WHERE user_id = ?`
	if !query.IncludeDeleted() {
		sql += ` AND deleted_at IS NULL`
	}
	if !query.IncludeArchived() {
		sql += ` AND archived = FALSE`
	}
	sql += ` ORDER BY order_date DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			resp          ListOrdersQueryResponse
			id            uuid.UUID
			protectionEnd *time.Time
			priceOriginal decimal.Decimal
			priceFinal    decimal.Decimal
			deletedAt     *time.Time
		)

		if err = rows.Scan(
			&id, &resp.Platform, &resp.ExternalNumber, &resp.OrderDate, &protectionEnd,
			&priceOriginal, &resp.CurrencyOriginal, &priceFinal,
			&resp.IsPriceEstimated, &resp.Comment, &resp.Archived, &deletedAt,
		); err != nil {
			return nil, nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		resp.ID = orderID
		resp.ProtectionEndDate = protectionEnd
		resp.PriceOriginal = kernel.NewMoney(priceOriginal)
		resp.PriceFinalBase = kernel.NewMoney(priceFinal)
		resp.DeletedAt = deletedAt
		resp.Items = make([]OrderItemResponse, 0)

		index[id] = len(orders)
		orders = append(orders, resp)
	}

	return orders, index, rows.Err()
}

func (h ListOrdersQueryHandler) fetchItems(
	ctx context.Context,
	orderIDs []uuid.UUID,
	orders []ListOrdersQueryResponse,
	orderIndex map[uuid.UUID]int,
) (map[uuid.UUID]itemPosition, []uuid.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, order_id, name, tags, quantity_ordered, quantity_received,
			price_per_item, status
		FROM order_items
		WHERE order_id IN ?
		ORDER BY name
	`, orderIDs).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	itemIndex := make(map[uuid.UUID]itemPosition)
	itemIDs := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			item    OrderItemResponse
			id      uuid.UUID
			orderID uuid.UUID
			tags    pq.StringArray
			price   decimal.NullDecimal
		)

		if err = rows.Scan(
			&id, &orderID, &item.Name, &tags, &item.QuantityOrdered,
			&item.QuantityReceived, &price, &item.Status,
		); err != nil {
			return nil, nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		item.ID = itemID
		item.Tags = tags
		if price.Valid {
			m := kernel.NewMoney(price.Decimal)
			item.PricePerItem = &m
		}
		item.InParcels = make([]OrderParcelRef, 0)
		item.Remaining = item.QuantityOrdered

		pos, ok := orderIndex[orderID]
		if !ok {
			continue
		}
		orders[pos].Items = append(orders[pos].Items, item)
		itemIndex[id] = itemPosition{order: pos, item: len(orders[pos].Items) - 1}
		itemIDs = append(itemIDs, id)
	}

	return itemIndex, itemIDs, rows.Err()
}

// itemPosition locates an item inside the orders slice, so placement rows
// can be attached without holding pointers into a growing slice.
type itemPosition struct {
	order int
	item  int
}

func (h ListOrdersQueryHandler) fetchPlacements(
	ctx context.Context,
	itemIDs []uuid.UUID,
	orders []ListOrdersQueryResponse,
	itemIndex map[uuid.UUID]itemPosition,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			pi.order_item_id, pi.quantity,
			p.id, p.tracking_number, p.label, p.status
		FROM parcel_items pi
		JOIN parcels p ON p.id = pi.parcel_id
		WHERE pi.order_item_id IN ?
		ORDER BY p.tracking_number
	`, itemIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID   uuid.UUID
			quantity int
			parcelID uuid.UUID
			ref      OrderParcelRef
		)

		if err = rows.Scan(
			&itemID, &quantity, &parcelID, &ref.TrackingNumber, &ref.Label, &ref.Status,
		); err != nil {
			return err
		}

		pos, ok := itemIndex[itemID]
		if !ok {
			continue
		}

		id, idErr := kernel.UUIDFromBytes(parcelID[:])
		if idErr != nil {
			return idErr
		}
		ref.ParcelID = id
		ref.Quantity = quantity

		item := &orders[pos.order].Items[pos.item]
		item.InParcels = append(item.InParcels, ref)
		item.Remaining -= quantity
	}

	return rows.Err()
}
