// Package normalization converts heterogeneous raw API payload records into
// the canonical transaction schema. Field names are reconciled through
// explicit ordered alias lists; records that cannot be keyed or coerced are
// dropped silently. Partial external data is common, so a bad record must
// never abort the batch.
package normalization

import "apt-market-lab/internal/domain"

// Normalize converts raw records for a region into canonical transactions.
// Returns the admitted transactions and their count. Drops, silently:
//   - records missing any of the three date components (cannot be keyed or
//     time-bucketed)
//   - records whose present numeric fields fail coercion
//
// No side effects beyond the pure transformation.
func Normalize(records []RawRecord, regionCode string) ([]*domain.Transaction, int) {
	var admitted []*domain.Transaction

	for _, rec := range records {
		t, ok := normalizeOne(rec, regionCode)
		if !ok {
			continue
		}
		admitted = append(admitted, t)
	}

	return admitted, len(admitted)
}

// normalizeOne resolves and coerces a single raw record.
func normalizeOne(rec RawRecord, regionCode string) (*domain.Transaction, bool) {
	year, ok := rec.parseRequiredInt(aliasDealYear)
	if !ok {
		return nil, false
	}
	month, ok := rec.parseRequiredInt(aliasDealMonth)
	if !ok {
		return nil, false
	}
	day, ok := rec.parseRequiredInt(aliasDealDay)
	if !ok {
		return nil, false
	}

	price, ok := rec.parseInt64(aliasDealAmount, 0)
	if !ok {
		return nil, false
	}
	area, ok := rec.parseFloat(aliasFloorArea, 0)
	if !ok {
		return nil, false
	}
	floor, ok := rec.parseInt(aliasFloor, 0)
	if !ok {
		return nil, false
	}
	buildYear, ok := rec.parseInt(aliasBuildYear, 0)
	if !ok {
		return nil, false
	}

	return &domain.Transaction{
		RegionCode:    regionCode,
		DealYear:      year,
		DealMonth:     month,
		DealDay:       day,
		ComplexID:     rec.resolveString(aliasComplexID, "unknown"),
		ComplexName:   rec.resolveString(aliasComplexName, "unknown"),
		LegalDongName: rec.resolveString(aliasLegalDong, ""),
		LotNumber:     rec.resolveString(aliasLotNumber, ""),
		FloorAreaM2:   area,
		Price10kWon:   price,
		Floor:         floor,
		BuildYear:     buildYear,
	}, true
}
