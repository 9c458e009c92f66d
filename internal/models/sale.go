// internal/models/sale.go
package models

import "time"

type SaleStatus string

const SaleStatusCompleted SaleStatus = "completed"

type Sale struct {
	SaleID       string     `json:"sale_id"`
	OwnerID      string     `json:"user_id"`
	ProductID    string     `json:"product_id"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	BuyerName    string     `json:"buyer_name,omitempty"`
	BuyerContact string     `json:"buyer_contact,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Status       SaleStatus `json:"status"`
	SoldAt       time.Time  `json:"sold_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// SalesSummary aggregates a seller's recorded sales.
type SalesSummary struct {
	TotalSales   int64              `json:"total_sales"`
	TotalRevenue float64            `json:"total_revenue"`
	ByCurrency   map[string]float64 `json:"by_currency"`
	ByProduct    map[string]int64   `json:"by_product"`
}
