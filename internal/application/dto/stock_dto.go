package dto

import "github.com/shopspring/decimal"

// CreateIncomingRequest body untuk POST /api/incoming.
type CreateIncomingRequest struct {
	SupplierID  string          `json:"supplier_id"`
	ItemID      string          `json:"item_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	InvoiceNo   string          `json:"invoice_no"`
	ReceivedAt  string          `json:"received_at"` // YYYY-MM-DD, opsional
	Notes       string          `json:"notes"`
}

// CreateOutgoingRequest body untuk POST /api/outgoing.
type CreateOutgoingRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Recipient   string          `json:"recipient"`
	Destination string          `json:"destination"`
	IssuedAt    string          `json:"issued_at"` // YYYY-MM-DD, opsional
	Notes       string          `json:"notes"`
}

// CreateTransferRequest body untuk POST /api/transfers.
type CreateTransferRequest struct {
	ItemID          string          `json:"item_id" validate:"required"`
	FromWarehouseID string          `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string          `json:"to_warehouse_id" validate:"required,nefield=FromWarehouseID"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	Notes           string          `json:"notes"`
}
