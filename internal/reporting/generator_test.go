package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"apt-market-lab/internal/domain"
	"apt-market-lab/internal/storage/memory"
)

var reportNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func reportParams() AnalysisParams {
	return AnalysisParams{
		MinM2:              76.0,
		MaxM2:              86.0,
		LookbackYears:      3,
		NTotal:             2,
		NBand:              2,
		MinAgeGroupSamples: 1,
	}
}

// seedTx builds a stored transaction; the deal day doubles as the dedup
// discriminator.
func seedTx(day int, area float64, price int64) *domain.Transaction {
	return &domain.Transaction{
		RegionCode:  "11680",
		DealYear:    2026,
		DealMonth:   (day-1)%6 + 1,
		DealDay:     day,
		ComplexID:   "11680-123",
		ComplexName: "래미안",
		FloorAreaM2: area,
		Price10kWon: price,
		Floor:       10,
		BuildYear:   2018,
	}
}

func seededStore(t *testing.T, txs ...*domain.Transaction) *memory.TransactionStore {
	t.Helper()
	store := memory.NewTransactionStore()
	if _, err := store.UpsertBulk(context.Background(), txs); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

func TestGenerator_NoData(t *testing.T) {
	store := memory.NewTransactionStore()
	gen := NewGenerator(store).WithClock(func() time.Time { return reportNow })

	report, err := gen.Generate(context.Background(), "11680", reportParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !report.NoData {
		t.Error("expected NoData for an empty region")
	}
	if report.RegionCode != "11680" {
		t.Errorf("expected region echoed, got %s", report.RegionCode)
	}
	if !report.GeneratedAt.Equal(reportNow) {
		t.Errorf("expected injected clock, got %v", report.GeneratedAt)
	}
	if len(report.Caveats) == 0 {
		t.Error("expected standing caveats even on a NoData report")
	}
}

func TestGenerator_FullPipeline(t *testing.T) {
	store := seededStore(t,
		seedTx(1, 84.9, 150000),
		seedTx(2, 84.9, 160000),
		seedTx(3, 84.9, 155000),
		seedTx(4, 120.0, 300000), // out of band, still counted in totals
	)
	gen := NewGenerator(store).WithClock(func() time.Time { return reportNow })

	report, err := gen.Generate(context.Background(), "11680", reportParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.NoData {
		t.Fatal("expected data, got NoData")
	}
	if report.TotalCount != 4 {
		t.Errorf("expected total count 4, got %d", report.TotalCount)
	}
	if report.BandCount != 3 {
		t.Errorf("expected band count 3, got %d", report.BandCount)
	}
	if report.BandMedianPricePerPyeong10k <= 0 {
		t.Errorf("expected positive band median, got %f", report.BandMedianPricePerPyeong10k)
	}

	if report.Leading == nil || report.Leading.Top1 == nil {
		t.Fatal("expected a leading complex with the relaxed gates")
	}
	if report.Leading.Top1.ComplexName != "래미안" {
		t.Errorf("expected 래미안 on top, got %s", report.Leading.Top1.ComplexName)
	}

	if report.Trend == nil {
		t.Fatal("expected a trend result")
	}
	if len(report.Trend.Monthly) == 0 {
		t.Error("expected monthly points from band data")
	}

	if len(report.AgeGroups) != 1 {
		t.Fatalf("expected a single age cohort, got %d", len(report.AgeGroups))
	}
	if report.AgeGroups[0].AgeGroup != domain.AgeGroupSemiNew {
		t.Errorf("expected semi-new cohort for 2018 builds, got %s", report.AgeGroups[0].AgeGroup)
	}
}

func TestGenerator_ParamsEchoed(t *testing.T) {
	store := seededStore(t, seedTx(1, 84.9, 150000))
	gen := NewGenerator(store).WithClock(func() time.Time { return reportNow })

	p := reportParams()
	report, err := gen.Generate(context.Background(), "11680", p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if report.Params != p {
		t.Errorf("expected params echoed, got %+v", report.Params)
	}
}

func TestRenderMarkdown(t *testing.T) {
	store := seededStore(t,
		seedTx(1, 84.9, 150000),
		seedTx(2, 84.9, 160000),
	)
	gen := NewGenerator(store).WithClock(func() time.Time { return reportNow })

	report, err := gen.Generate(context.Background(), "11680", reportParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# Apartment Market Report: 11680",
		"## Headline",
		"## Leading Complexes",
		"## Price Trend",
		"## Price by Building Age",
		"## Caveats",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestRenderMarkdown_NoData(t *testing.T) {
	store := memory.NewTransactionStore()
	gen := NewGenerator(store).WithClock(func() time.Time { return reportNow })

	report, err := gen.Generate(context.Background(), "11680", reportParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)
	if !strings.Contains(md, "No stored transactions") {
		t.Error("expected the NoData notice in markdown output")
	}
	if strings.Contains(md, "## Headline") {
		t.Error("expected no sections after the NoData notice")
	}
}

func TestRenderCSV(t *testing.T) {
	monthly := []domain.MonthlyPoint{
		{YearMonth: 202601, MedianPricePerPyeong10k: 5000, Volume: 3},
		{YearMonth: 202602, MedianPricePerPyeong10k: 5100.5, Volume: 2},
	}

	csv := RenderCSV(monthly)
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "year_month,median_price_per_pyeong_10k,volume" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "202601,") || !strings.HasSuffix(lines[1], ",3") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}
