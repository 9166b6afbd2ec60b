package analytics

import (
	"testing"

	"apt-market-lab/internal/domain"
)

// ageRow builds a derived row already assigned to a cohort.
func ageRow(group string, pricePerPyeong float64, price10k int64) *domain.DerivedTransaction {
	return &domain.DerivedTransaction{
		Transaction:       domain.Transaction{Price10kWon: price10k},
		AgeGroup:          group,
		PricePerPyeong10k: pricePerPyeong,
	}
}

func TestComputeAgeGroupLevels_PerCohortStats(t *testing.T) {
	rows := []*domain.DerivedTransaction{
		ageRow(domain.AgeGroupNew, 6000, 150000),
		ageRow(domain.AgeGroupNew, 8000, 170000),
		ageRow(domain.AgeGroupOld, 4000, 90000),
	}

	got := ComputeAgeGroupLevels(rows, 1)

	if len(got) != 2 {
		t.Fatalf("expected 2 cohorts, got %d", len(got))
	}

	// Output follows the fixed cohort order: new before old
	if got[0].AgeGroup != domain.AgeGroupNew {
		t.Errorf("expected first cohort %q, got %q", domain.AgeGroupNew, got[0].AgeGroup)
	}
	if got[0].Count != 2 {
		t.Errorf("expected new cohort count 2, got %d", got[0].Count)
	}
	if got[0].MedianPricePerPyeong10k != 7000 {
		t.Errorf("expected new cohort median 7000, got %f", got[0].MedianPricePerPyeong10k)
	}
	if got[0].MeanPricePerPyeong10k != 7000 {
		t.Errorf("expected new cohort mean 7000, got %f", got[0].MeanPricePerPyeong10k)
	}
	if got[0].MedianPrice10k != 160000 {
		t.Errorf("expected new cohort median price 160000, got %f", got[0].MedianPrice10k)
	}

	if got[1].AgeGroup != domain.AgeGroupOld {
		t.Errorf("expected second cohort %q, got %q", domain.AgeGroupOld, got[1].AgeGroup)
	}
}

func TestComputeAgeGroupLevels_UncertainFlag(t *testing.T) {
	rows := []*domain.DerivedTransaction{
		ageRow(domain.AgeGroupNew, 6000, 150000),
		ageRow(domain.AgeGroupNew, 7000, 160000),
		ageRow(domain.AgeGroupOld, 4000, 90000),
	}

	got := ComputeAgeGroupLevels(rows, 2)

	if got[0].Uncertain {
		t.Error("cohort at the threshold must not be flagged")
	}
	if !got[1].Uncertain {
		t.Error("cohort below the threshold must be flagged")
	}
}

func TestComputeAgeGroupLevels_DefaultThreshold(t *testing.T) {
	// minSamples <= 0 selects the package default
	rows := []*domain.DerivedTransaction{
		ageRow(domain.AgeGroupNew, 6000, 150000),
	}

	got := ComputeAgeGroupLevels(rows, 0)
	if !got[0].Uncertain {
		t.Errorf("expected single sample flagged under default threshold %d", DefaultMinAgeGroupSamples)
	}
}

func TestComputeAgeGroupLevels_EmptyInput(t *testing.T) {
	if got := ComputeAgeGroupLevels(nil, 0); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
