package analytics

import (
	"testing"

	"apt-market-lab/internal/domain"
)

func bandRow(area float64) *domain.DerivedTransaction {
	return &domain.DerivedTransaction{
		Transaction: domain.Transaction{FloorAreaM2: area},
	}
}

func TestFilterSizeBand_InclusiveBounds(t *testing.T) {
	rows := []*domain.DerivedTransaction{
		bandRow(75.9), bandRow(76.0), bandRow(80.0), bandRow(86.0), bandRow(86.1),
	}

	got := FilterSizeBand(rows, 76.0, 86.0)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}

	// Both boundary values must be retained
	if got[0].FloorAreaM2 != 76.0 || got[2].FloorAreaM2 != 86.0 {
		t.Errorf("expected boundary rows retained, got %f..%f", got[0].FloorAreaM2, got[2].FloorAreaM2)
	}
}

func TestFilterSizeBand_InvertedRange(t *testing.T) {
	rows := []*domain.DerivedTransaction{bandRow(80.0)}

	if got := FilterSizeBand(rows, 86.0, 76.0); len(got) != 0 {
		t.Errorf("expected empty result for inverted range, got %d rows", len(got))
	}
}

func TestFilterSizeBand_EmptyInput(t *testing.T) {
	if got := FilterSizeBand(nil, 76.0, 86.0); len(got) != 0 {
		t.Errorf("expected empty result, got %d rows", len(got))
	}
}
