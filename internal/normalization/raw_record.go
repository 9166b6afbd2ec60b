package normalization

import (
	"strconv"
	"strings"
)

// RawRecord is one loosely-typed key/value record as delivered by the
// upstream API. The same logical field arrives under different names
// depending on the response encoding: a localized label, a camelCase alias
// or an UPPER_CASE alias.
type RawRecord map[string]string

// Field alias lists, ordered by priority: first present alias wins. Kept as
// explicit data rather than reflection so the reconciliation policy is
// reviewable in one place.
var (
	aliasDealYear  = []string{"년", "dealYear", "DEAL_YEAR"}
	aliasDealMonth = []string{"월", "dealMonth", "DEAL_MONTH"}
	aliasDealDay   = []string{"일", "dealDay", "DEAL_DAY"}

	aliasDealAmount = []string{"거래금액", "dealAmount", "DEAL_AMOUNT"}

	aliasComplexID   = []string{"일련번호", "aptSeq", "APT_SEQ"}
	aliasComplexName = []string{"아파트", "aptNm", "APT_NM"}
	aliasLegalDong   = []string{"법정동", "umdNm", "UMD_NM"}
	aliasLotNumber   = []string{"지번", "jibun", "JIBUN"}

	aliasFloorArea = []string{"전용면적", "excluUseAr", "EXCLU_USE_AR"}
	aliasFloor     = []string{"층", "floor", "FLOOR"}
	aliasBuildYear = []string{"건축년도", "buildYear", "BUILD_YEAR"}
)

// resolve returns the first non-absent alias value and whether any alias was
// present. Present-but-empty values count as absent.
func (r RawRecord) resolve(aliases []string) (string, bool) {
	for _, key := range aliases {
		if v, ok := r[key]; ok {
			v = strings.TrimSpace(v)
			if v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// resolveString returns the resolved value or fallback when absent.
func (r RawRecord) resolveString(aliases []string, fallback string) string {
	if v, ok := r.resolve(aliases); ok {
		return v
	}
	return fallback
}

// cleanNumber strips thousands separators and surrounding whitespace.
func cleanNumber(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// parseRequiredInt coerces a numeric field that must be present. Absence or
// a parse failure both report ok=false.
func (r RawRecord) parseRequiredInt(aliases []string) (int, bool) {
	v, present := r.resolve(aliases)
	if !present {
		return 0, false
	}
	n, err := strconv.Atoi(cleanNumber(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseInt coerces a raw numeric field to int. Absent fields coerce to the
// fallback; present fields that fail to parse report ok=false so the caller
// can drop the record.
func (r RawRecord) parseInt(aliases []string, fallback int) (int, bool) {
	v, present := r.resolve(aliases)
	if !present {
		return fallback, true
	}
	n, err := strconv.Atoi(cleanNumber(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseInt64 is parseInt for 64-bit targets (prices).
func (r RawRecord) parseInt64(aliases []string, fallback int64) (int64, bool) {
	v, present := r.resolve(aliases)
	if !present {
		return fallback, true
	}
	n, err := strconv.ParseInt(cleanNumber(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseFloat coerces a raw numeric field to float64 with the same
// absent/fallback semantics as parseInt.
func (r RawRecord) parseFloat(aliases []string, fallback float64) (float64, bool) {
	v, present := r.resolve(aliases)
	if !present {
		return fallback, true
	}
	f, err := strconv.ParseFloat(cleanNumber(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
