package domain

import "github.com/shopspring/decimal"

// Product is the client's snapshot of a catalog entry. The server owns
// the authoritative copy; everything here may be stale until the next
// catalog fetch.
type Product struct {
	ID           string
	Name         string
	Author       string
	Category     string
	Price        decimal.Decimal
	Stock        int
	Rating       float64
	IsBestSeller bool
	IsNewArrival bool
}

func (p Product) InStock() bool { return p.Stock > 0 }
