package domain

// PyeongPerM2 converts exclusive-use area to pyeong: pyeong = m2 / 3.30578.
const PyeongPerM2 = 3.30578

// Age group labels, ordered. Boundaries: age <= 5 is new, 6..10 semi-new,
// 11 and above old.
const (
	AgeGroupNew     = "new (<=5y)"
	AgeGroupSemiNew = "semi-new (6-10y)"
	AgeGroupOld     = "old (>10y)"
)

// AgeGroupOrder is the fixed presentation order of age cohorts.
var AgeGroupOrder = []string{AgeGroupNew, AgeGroupSemiNew, AgeGroupOld}

// DerivedTransaction is a Transaction enriched with computed market columns.
// Derived rows are query-scoped and never persisted.
type DerivedTransaction struct {
	Transaction

	Pyeong float64 // FloorAreaM2 / PyeongPerM2

	// Unit prices. The store keeps prices in 10k-won units; price per pyeong
	// is conventionally reported in won, so both multipliers are explicit.
	PricePerPyeong10k float64 // Price10kWon / Pyeong
	PricePerPyeongWon float64 // Price10kWon * 10000 / Pyeong

	// Age is current year minus BuildYear. BuildYear has year granularity,
	// so Age is always an estimate.
	Age      int
	AgeGroup string
}

// AgeGroupFor buckets an estimated age into its cohort label.
func AgeGroupFor(age int) string {
	switch {
	case age <= 5:
		return AgeGroupNew
	case age <= 10:
		return AgeGroupSemiNew
	default:
		return AgeGroupOld
	}
}
