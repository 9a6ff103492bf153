package http

import (
	"time"

	"parceltracker/internal/core/application/usecases/queries"
	"parceltracker/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Monetary amounts, rates and weights travel as decimal strings ("100.50")
// to keep JSON clients away from binary floating point.

type registerUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BaseCurrency string `json:"base_currency"`
}

type createOrderRequest struct {
	Platform          string     `json:"platform"`
	ExternalNumber    string     `json:"external_number"`
	OrderDate         time.Time  `json:"order_date"`
	ProtectionEndDate *time.Time `json:"protection_end_date,omitempty"`
	PriceOriginal     string     `json:"price_original"`
	CurrencyOriginal  string     `json:"currency_original"`
	ExchangeRate      *string    `json:"exchange_rate,omitempty"`
	IsPriceEstimated  bool       `json:"is_price_estimated"`
	Comment           string     `json:"comment"`
}

type updateOrderRequest struct {
	Platform          string     `json:"platform"`
	ExternalNumber    string     `json:"external_number"`
	OrderDate         time.Time  `json:"order_date"`
	ProtectionEndDate *time.Time `json:"protection_end_date,omitempty"`
	Comment           string     `json:"comment"`
	ShippingCost      *string    `json:"shipping_cost,omitempty"`
	CustomsCost       *string    `json:"customs_cost,omitempty"`
	Archived          bool       `json:"archived"`
}

type orderItemRequest struct {
	Name             string   `json:"name"`
	Tags             []string `json:"tags,omitempty"`
	QuantityOrdered  int      `json:"quantity_ordered"`
	QuantityReceived int      `json:"quantity_received"`
	PricePerItem     *string  `json:"price_per_item,omitempty"`
	Status           string   `json:"status"`
}

type createParcelRequest struct {
	TrackingNumber string `json:"tracking_number"`
	CarrierSlug    string `json:"carrier_slug"`
	Label          string `json:"label"`
}

type updateParcelRequest struct {
	TrackingNumber string  `json:"tracking_number"`
	CarrierSlug    string  `json:"carrier_slug"`
	Label          string  `json:"label"`
	Status         string  `json:"status"`
	WeightKg       *string `json:"weight_kg,omitempty"`
	Archived       bool    `json:"archived"`
}

type allocateItemRequest struct {
	OrderItemID string `json:"order_item_id"`
	Quantity    int    `json:"quantity"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type orderParcelRefDTO struct {
	ParcelID       string `json:"parcel_id"`
	TrackingNumber string `json:"tracking_number"`
	Label          string `json:"label"`
	Status         string `json:"status"`
	Quantity       int    `json:"quantity"`
}

type orderItemDTO struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Tags             []string            `json:"tags"`
	QuantityOrdered  int                 `json:"quantity_ordered"`
	QuantityReceived int                 `json:"quantity_received"`
	PricePerItem     *string             `json:"price_per_item,omitempty"`
	Status           string              `json:"status"`
	InParcels        []orderParcelRefDTO `json:"in_parcels"`
	Remaining        int                 `json:"remaining"`
}

type orderDTO struct {
	ID                string         `json:"id"`
	Platform          string         `json:"platform"`
	ExternalNumber    string         `json:"external_number"`
	OrderDate         time.Time      `json:"order_date"`
	ProtectionEndDate *time.Time     `json:"protection_end_date,omitempty"`
	PriceOriginal     string         `json:"price_original"`
	CurrencyOriginal  string         `json:"currency_original"`
	PriceFinalBase    string         `json:"price_final_base"`
	IsPriceEstimated  bool           `json:"is_price_estimated"`
	Comment           string         `json:"comment"`
	Archived          bool           `json:"archived"`
	DeletedAt         *time.Time     `json:"deleted_at,omitempty"`
	Items             []orderItemDTO `json:"items"`
}

type parcelContentDTO struct {
	OrderItemID     string `json:"order_item_id"`
	ItemName        string `json:"item_name"`
	Quantity        int    `json:"quantity"`
	OrderID         string `json:"order_id"`
	OrderPlatform   string `json:"order_platform"`
	OrderExternalNo string `json:"order_external_number"`
	OrderDeleted    bool   `json:"order_deleted"`
}

type parcelDTO struct {
	ID                string             `json:"id"`
	TrackingNumber    string             `json:"tracking_number"`
	CarrierSlug       string             `json:"carrier_slug"`
	Label             string             `json:"label"`
	Status            string             `json:"status"`
	TrackingUpdatedAt *time.Time         `json:"tracking_updated_at,omitempty"`
	WeightKg          *string            `json:"weight_kg,omitempty"`
	Archived          bool               `json:"archived"`
	Contents          []parcelContentDTO `json:"contents"`
}

func toOrderDTO(src queries.ListOrdersQueryResponse) orderDTO {
	items := make([]orderItemDTO, 0, len(src.Items))
	for _, item := range src.Items {
		placements := make([]orderParcelRefDTO, 0, len(item.InParcels))
		for _, ref := range item.InParcels {
			placements = append(placements, orderParcelRefDTO{
				ParcelID:       ref.ParcelID.String(),
				TrackingNumber: ref.TrackingNumber,
				Label:          ref.Label,
				Status:         ref.Status,
				Quantity:       ref.Quantity,
			})
		}

		items = append(items, orderItemDTO{
			ID:               item.ID.String(),
			Name:             item.Name,
			Tags:             item.Tags,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			PricePerItem:     moneyString(item.PricePerItem),
			Status:           item.Status,
			InParcels:        placements,
			Remaining:        item.Remaining,
		})
	}

	return orderDTO{
		ID:                src.ID.String(),
		Platform:          src.Platform,
		ExternalNumber:    src.ExternalNumber,
		OrderDate:         src.OrderDate,
		ProtectionEndDate: src.ProtectionEndDate,
		PriceOriginal:     src.PriceOriginal.String(),
		CurrencyOriginal:  src.CurrencyOriginal,
		PriceFinalBase:    src.PriceFinalBase.String(),
		IsPriceEstimated:  src.IsPriceEstimated,
		Comment:           src.Comment,
		Archived:          src.Archived,
		DeletedAt:         src.DeletedAt,
		Items:             items,
	}
}

func toParcelDTO(src queries.GetParcelQueryResponse) parcelDTO {
	contents := make([]parcelContentDTO, 0, len(src.Contents))
	for _, content := range src.Contents {
		contents = append(contents, parcelContentDTO{
			OrderItemID:     content.OrderItemID.String(),
			ItemName:        content.ItemName,
			Quantity:        content.Quantity,
			OrderID:         content.OrderID.String(),
			OrderPlatform:   content.OrderPlatform,
			OrderExternalNo: content.OrderExternalNo,
			OrderDeleted:    content.OrderDeleted,
		})
	}

	var weight *string
	if src.WeightKg != nil {
		w := src.WeightKg.String()
		weight = &w
	}

	return parcelDTO{
		ID:                src.ID.String(),
		TrackingNumber:    src.TrackingNumber,
		CarrierSlug:       src.CarrierSlug,
		Label:             src.Label,
		Status:            src.Status,
		TrackingUpdatedAt: src.TrackingUpdatedAt,
		WeightKg:          weight,
		Archived:          src.Archived,
		Contents:          contents,
	}
}

func moneyString(m *kernel.Money) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

// parseOptionalMoney converts an optional decimal string into Money.
func parseOptionalMoney(s *string) (*kernel.Money, error) {
	if s == nil {
		return nil, nil
	}
	money, err := kernel.NewMoneyFromString(*s)
	if err != nil {
		return nil, err
	}
	return &money, nil
}

// parseOptionalWeight converts an optional decimal string into Weight.
func parseOptionalWeight(s *string) (*kernel.Weight, error) {
	if s == nil {
		return nil, nil
	}
	value, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	weight, err := kernel.NewWeight(value)
	if err != nil {
		return nil, err
	}
	return &weight, nil
}

// parseOptionalRate converts an optional decimal string into ExchangeRate.
func parseOptionalRate(s *string) (*kernel.ExchangeRate, error) {
	if s == nil {
		return nil, nil
	}
	value, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	rate, err := kernel.NewExchangeRate(value)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
