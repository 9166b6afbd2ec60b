package domain

import "time"

// Transaction is the canonical unit of record: one reported apartment trade
// within an administrative region. Transactions are immutable once stored.
type Transaction struct {
	RegionCode string // 5-digit administrative code (partition key)

	DealYear  int
	DealMonth int
	DealDay   int

	ComplexID   string // complex identifier; may collide across regions
	ComplexName string

	LegalDongName string // display-only
	LotNumber     string // display-only

	FloorAreaM2 float64 // exclusive-use area, > 0
	Price10kWon int64   // transaction price in units of 10,000 won
	Floor       int
	BuildYear   int // 4-digit year; 0 = unknown/unparsed

	IngestedAt time.Time // set at persistence time
}

// YearMonth returns the YYYYMM time bucket of the deal date.
func (t *Transaction) YearMonth() int {
	return t.DealYear*100 + t.DealMonth
}

// DedupKey uniquely identifies a transaction within a region. Re-ingesting
// a transaction with an identical key is a no-op, not an error.
type DedupKey struct {
	RegionCode  string
	ComplexID   string
	DealYear    int
	DealMonth   int
	DealDay     int
	FloorAreaM2 float64
	Floor       int
	Price10kWon int64
}

// Key returns the dedup key for the transaction.
func (t *Transaction) Key() DedupKey {
	return DedupKey{
		RegionCode:  t.RegionCode,
		ComplexID:   t.ComplexID,
		DealYear:    t.DealYear,
		DealMonth:   t.DealMonth,
		DealDay:     t.DealDay,
		FloorAreaM2: t.FloorAreaM2,
		Floor:       t.Floor,
		Price10kWon: t.Price10kWon,
	}
}
