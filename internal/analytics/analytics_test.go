package analytics

import (
	"fmt"
	"testing"
	"time"

	"bilty/internal/core"
)

func bill(date core.Date, vehicle, from, to string, total float64, status core.BillStatus) core.TransportBill {
	return core.TransportBill{
		Date:      date,
		VehicleNo: vehicle,
		From:      from,
		To:        to,
		TransportBillData: core.TransportBillData{
			Total:  total,
			Status: status,
		},
	}
}

func TestSummarizeBasicFigures(t *testing.T) {
	now := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	bills := []core.TransportBill{
		bill(core.NewDate(2025, 8, 1), "GJ01AA1111", "Surat", "Mumbai", 100, core.StatusCompleted),
		bill(core.NewDate(2025, 8, 2), "GJ01AA2222", "Surat", "Pune", 200, core.StatusPending),
	}

	s := Summarize(bills, now)

	if s.TotalTrips != 2 {
		t.Errorf("TotalTrips = %d", s.TotalTrips)
	}
	if s.TotalRevenue != 300 {
		t.Errorf("TotalRevenue = %v", s.TotalRevenue)
	}
	if s.CompletionRate != 50 {
		t.Errorf("CompletionRate = %v", s.CompletionRate)
	}
	if s.PendingRate != 50 {
		t.Errorf("PendingRate = %v", s.PendingRate)
	}
	if s.AvgRevenuePerTrip != 150 {
		t.Errorf("AvgRevenuePerTrip = %v", s.AvgRevenuePerTrip)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Now())

	if s.TotalTrips != 0 || s.TotalRevenue != 0 || s.CompletionRate != 0 ||
		s.PendingRate != 0 || s.AvgRevenuePerTrip != 0 || s.RevenueGrowth != 0 {
		t.Errorf("empty input must yield zeroed figures: %+v", s)
	}
	if len(s.TopRoutes) != 0 || len(s.TopVehicles) != 0 || len(s.TopOwners) != 0 || len(s.MonthlyTrend) != 0 {
		t.Errorf("empty input must yield empty rankings: %+v", s)
	}
	if len(s.StatusDistribution) != 4 {
		t.Fatalf("distribution must list all statuses, got %d", len(s.StatusDistribution))
	}
	for _, sc := range s.StatusDistribution {
		if sc.Count != 0 || sc.Percent != 0 {
			t.Errorf("status %s not zeroed: %+v", sc.Status, sc)
		}
	}
}

func TestTopRoutesRankedByRevenue(t *testing.T) {
	bills := []core.TransportBill{
		bill(core.NewDate(2025, 7, 1), "V1", "A", "B", 100, core.StatusCompleted),
		bill(core.NewDate(2025, 7, 2), "V1", "A", "B", 100, core.StatusCompleted),
		bill(core.NewDate(2025, 7, 3), "V2", "C", "D", 500, core.StatusCompleted),
	}

	routes := topRoutes(bills, 5)

	if len(routes) != 2 {
		t.Fatalf("len = %d", len(routes))
	}
	if routes[0].Route != "C → D" || routes[0].Revenue != 500 {
		t.Errorf("top route = %+v", routes[0])
	}
	if routes[1].Route != "A → B" || routes[1].Trips != 2 || routes[1].Revenue != 200 {
		t.Errorf("second route = %+v", routes[1])
	}
}

func TestVehiclesRankedByTripCount(t *testing.T) {
	// V1 earns more, V2 runs more. The vehicle board sorts by trips.
	bills := []core.TransportBill{
		bill(core.NewDate(2025, 7, 1), "V1", "A", "B", 900, core.StatusCompleted),
		bill(core.NewDate(2025, 7, 2), "V2", "A", "B", 100, core.StatusCompleted),
		bill(core.NewDate(2025, 7, 3), "V2", "A", "B", 100, core.StatusCompleted),
	}

	vehicles := rankVehicles(bills, topVehiclesAnalysis)

	if vehicles[0].VehicleNo != "V2" || vehicles[0].Trips != 2 {
		t.Errorf("top vehicle = %+v", vehicles[0])
	}
	if vehicles[1].VehicleNo != "V1" || vehicles[1].Revenue != 900 {
		t.Errorf("second vehicle = %+v", vehicles[1])
	}
}

func TestOwnerRankingUsesFirstLine(t *testing.T) {
	withOwner := func(owner string) core.TransportBill {
		b := bill(core.NewDate(2025, 7, 1), "V1", "A", "B", 100, core.StatusCompleted)
		b.OwnerData.OwnerNameAndAddress = owner
		return b
	}
	bills := []core.TransportBill{
		withOwner("Ramesh Transport\nPlot 4, Surat"),
		withOwner("Ramesh Transport\nDifferent address line"),
		withOwner(""),
	}

	owners := rankOwners(bills)

	if owners[0].Owner != "Ramesh Transport" || owners[0].Trips != 2 {
		t.Errorf("top owner = %+v", owners[0])
	}
	if owners[1].Owner != "Unknown" {
		t.Errorf("blank owner label = %+v", owners[1])
	}
}

func TestObservedTrendChronologicalAndCapped(t *testing.T) {
	var bills []core.TransportBill
	// 14 distinct months, inserted newest first to prove sorting.
	for i := 0; i < 14; i++ {
		d := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		bills = append(bills, bill(core.NewDate(d.Year(), int(d.Month()), 1), "V1", "A", "B", 10, core.StatusCompleted))
	}

	trend := observedTrend(bills)

	if len(trend) != 12 {
		t.Fatalf("trend must cap at 12 buckets, got %d", len(trend))
	}
	for i := 1; i < len(trend); i++ {
		prev, cur := trend[i-1], trend[i]
		if cur.Year < prev.Year || (cur.Year == prev.Year && cur.Month <= prev.Month) {
			t.Fatalf("trend out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
	if trend[len(trend)-1].Label != "Dec 2025" {
		t.Errorf("last bucket = %q", trend[len(trend)-1].Label)
	}
}

func TestGrowthZeroDenominator(t *testing.T) {
	if g := growth(500, 0); g != 0 {
		t.Errorf("growth with no previous period = %v, want 0", g)
	}
	if g := growth(150, 100); g != 50 {
		t.Errorf("growth = %v, want 50", g)
	}
	if g := growth(50, 100); g != -50 {
		t.Errorf("growth = %v, want -50", g)
	}
}

func TestDashboardMonthBuckets(t *testing.T) {
	now := time.Date(2025, time.August, 31, 12, 0, 0, 0, time.UTC)
	bills := []core.TransportBill{
		bill(core.NewDate(2025, 8, 5), "V1", "A", "B", 100, core.StatusCompleted),
		bill(core.NewDate(2025, 8, 20), "V2", "A", "B", 300, core.StatusPending),
		bill(core.NewDate(2025, 7, 15), "V1", "A", "B", 200, core.StatusCompleted),
		bill(core.NewDate(2025, 1, 2), "V3", "C", "D", 999, core.StatusCompleted),
	}

	d := Dashboard(bills, now)

	if d.TripsThisMonth != 2 || d.TripsLastMonth != 1 {
		t.Errorf("trips = %d/%d", d.TripsThisMonth, d.TripsLastMonth)
	}
	if d.MonthlyRevenue != 400 {
		t.Errorf("MonthlyRevenue = %v", d.MonthlyRevenue)
	}
	// Fleet-wide: the January vehicle still counts as active and its
	// revenue enters the per-trip average.
	if d.ActiveVehicles != 3 {
		t.Errorf("ActiveVehicles = %d", d.ActiveVehicles)
	}
	if d.AvgRevenuePerTrip != 399.75 {
		t.Errorf("AvgRevenuePerTrip = %v", d.AvgRevenuePerTrip)
	}
	// 400 this month against 200 last month.
	if d.RevenueGrowth != 100 {
		t.Errorf("RevenueGrowth = %v", d.RevenueGrowth)
	}
}

func TestDashboardVehicleBoard(t *testing.T) {
	now := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	var bills []core.TransportBill
	// V5 runs the most trips, V1 the fewest; five vehicles feed a
	// board capped at four.
	for v := 1; v <= 5; v++ {
		for trip := 0; trip < v; trip++ {
			bills = append(bills, bill(core.NewDate(2025, 8, trip+1),
				fmt.Sprintf("V%d", v), "A", "B", 100, core.StatusCompleted))
		}
	}

	d := Dashboard(bills, now)

	if len(d.TopVehicles) != 4 {
		t.Fatalf("vehicle board = %d rows", len(d.TopVehicles))
	}
	if d.TopVehicles[0].VehicleNo != "V5" || d.TopVehicles[0].Trips != 5 {
		t.Errorf("top vehicle = %+v", d.TopVehicles[0])
	}
	if d.TopVehicles[3].VehicleNo != "V2" {
		t.Errorf("last row = %+v", d.TopVehicles[3])
	}
}

func TestDashboardTrendSeedsSixMonths(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	bills := []core.TransportBill{
		bill(core.NewDate(2025, 8, 1), "V1", "A", "B", 100, core.StatusCompleted),
		bill(core.NewDate(2025, 5, 1), "V1", "A", "B", 50, core.StatusCompleted),
		// Outside the window, must not appear.
		bill(core.NewDate(2024, 12, 1), "V1", "A", "B", 999, core.StatusCompleted),
	}

	trend := seededTrend(bills, now)

	if len(trend) != 6 {
		t.Fatalf("len = %d", len(trend))
	}
	if trend[0].Label != "Mar 2025" || trend[5].Label != "Aug 2025" {
		t.Fatalf("window = %q..%q", trend[0].Label, trend[5].Label)
	}
	if trend[5].Revenue != 100 || trend[5].Trips != 1 {
		t.Errorf("current month bucket = %+v", trend[5])
	}
	if trend[2].Label != "May 2025" || trend[2].Revenue != 50 {
		t.Errorf("May bucket = %+v", trend[2])
	}
	for _, i := range []int{0, 1, 3, 4} {
		if trend[i].Trips != 0 || trend[i].Revenue != 0 {
			t.Errorf("bucket %s must be zero-seeded: %+v", trend[i].Label, trend[i])
		}
	}
}

func TestRecentEntriesNewestFirst(t *testing.T) {
	bills := []core.TransportBill{
		bill(core.NewDate(2025, 8, 1), "V1", "A", "B", 1, core.StatusCompleted),
		bill(core.NewDate(2025, 8, 9), "V2", "A", "B", 2, core.StatusCompleted),
		bill(core.NewDate(2025, 8, 5), "V3", "A", "B", 3, core.StatusCompleted),
		bill(core.NewDate(2025, 8, 7), "V4", "A", "B", 4, core.StatusCompleted),
		bill(core.NewDate(2025, 8, 3), "V5", "A", "B", 5, core.StatusCompleted),
		bill(core.NewDate(2025, 8, 8), "V6", "A", "B", 6, core.StatusCompleted),
	}

	recent := recentEntries(bills)

	if len(recent) != 5 {
		t.Fatalf("len = %d", len(recent))
	}
	if recent[0].VehicleNo != "V2" || recent[4].VehicleNo != "V5" {
		t.Errorf("order = %s..%s", recent[0].VehicleNo, recent[4].VehicleNo)
	}
}

func TestHalfYearGrowth(t *testing.T) {
	now := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	bills := []core.TransportBill{
		// Current half: Mar..Aug 2025.
		bill(core.NewDate(2025, 6, 1), "V1", "A", "B", 300, core.StatusCompleted),
		bill(core.NewDate(2025, 4, 1), "V1", "A", "B", 150, core.StatusCompleted),
		// Previous half: Sep 2024..Feb 2025.
		bill(core.NewDate(2024, 11, 1), "V1", "A", "B", 300, core.StatusCompleted),
		// Older than a year, ignored.
		bill(core.NewDate(2023, 1, 1), "V1", "A", "B", 9999, core.StatusCompleted),
	}

	revGrowth, tripGrowth := halfYearGrowth(bills, now)

	if revGrowth != 50 {
		t.Errorf("revenue growth = %v, want 50", revGrowth)
	}
	if tripGrowth != 100 {
		t.Errorf("trip growth = %v, want 100", tripGrowth)
	}
}

func TestHalfYearGrowthCountsForwardDatedBills(t *testing.T) {
	now := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	bills := []core.TransportBill{
		// Dated next month, still part of the current period.
		bill(core.NewDate(2025, 9, 15), "V1", "A", "B", 200, core.StatusPending),
		bill(core.NewDate(2025, 5, 1), "V1", "A", "B", 100, core.StatusCompleted),
		bill(core.NewDate(2024, 12, 1), "V1", "A", "B", 150, core.StatusCompleted),
	}

	revGrowth, _ := halfYearGrowth(bills, now)

	if revGrowth != 100 {
		t.Errorf("revenue growth = %v, want 100", revGrowth)
	}
}
