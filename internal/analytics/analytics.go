// Package analytics aggregates transport bills into the figures the
// analysis and dashboard views display. All functions are pure: they
// take a bill slice and return value types, so callers decide when and
// what to fetch.
package analytics

import (
	"sort"
	"time"

	"bilty/internal/core"
)

const (
	topRoutesAnalysis    = 5
	topRoutesDashboard   = 4
	topVehiclesAnalysis  = 5
	topVehiclesDashboard = 4
	topOwners          = 5
	trendMonthsMax     = 12
	dashboardTrendLen  = 6
	recentEntriesLen   = 5
)

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status  core.BillStatus
	Count   int
	Percent float64
}

// RouteStat aggregates the bills sharing one "from → to" label.
type RouteStat struct {
	Route   string
	Trips   int
	Revenue float64
}

// VehicleStat aggregates the bills of one vehicle number.
type VehicleStat struct {
	VehicleNo string
	Trips     int
	Revenue   float64
}

// OwnerStat aggregates the bills of one owner label.
type OwnerStat struct {
	Owner   string
	Trips   int
	Revenue float64
}

// MonthPoint is one bucket of a monthly trend.
type MonthPoint struct {
	Year    int
	Month   time.Month
	Label   string
	Trips   int
	Revenue float64
}

// Summary is the analysis page payload.
type Summary struct {
	TotalTrips         int
	TotalRevenue       float64
	AvgRevenuePerTrip  float64
	CompletionRate     float64
	PendingRate        float64
	RevenueGrowth      float64
	TripGrowth         float64
	StatusDistribution []StatusCount
	TopRoutes          []RouteStat
	TopVehicles        []VehicleStat
	TopOwners          []OwnerStat
	MonthlyTrend       []MonthPoint
}

// DashboardStats is the dashboard payload: the current calendar month
// against the previous one, plus a short trend and the latest entries.
type DashboardStats struct {
	TripsThisMonth    int
	TripsLastMonth    int
	MonthlyRevenue    float64
	RevenueGrowth     float64
	ActiveVehicles    int
	AvgRevenuePerTrip float64
	TopRoutes         []RouteStat
	TopVehicles       []VehicleStat
	RecentEntries     []core.TransportBill
	MonthlyTrend      []MonthPoint
}

// Summarize computes the analysis figures over bills. An empty slice
// yields an all-zero summary with empty rankings.
func Summarize(bills []core.TransportBill, now time.Time) Summary {
	s := Summary{
		StatusDistribution: statusDistribution(bills),
		TopRoutes:          topRoutes(bills, topRoutesAnalysis),
		TopVehicles:        rankVehicles(bills, topVehiclesAnalysis),
		TopOwners:          rankOwners(bills),
		MonthlyTrend:       observedTrend(bills),
	}
	s.TotalTrips = len(bills)
	var completed, pending int
	for _, b := range bills {
		s.TotalRevenue += b.TransportBillData.Total
		switch b.TransportBillData.Status {
		case core.StatusCompleted:
			completed++
		case core.StatusPending:
			pending++
		}
	}
	s.AvgRevenuePerTrip = ratio(s.TotalRevenue, float64(s.TotalTrips))
	s.CompletionRate = ratio(float64(completed)*100, float64(s.TotalTrips))
	s.PendingRate = ratio(float64(pending)*100, float64(s.TotalTrips))
	s.RevenueGrowth, s.TripGrowth = halfYearGrowth(bills, now)
	return s
}

// Dashboard computes the dashboard figures relative to now's calendar
// month. The trend always spans the last six months, with zero buckets
// where no bill fell.
func Dashboard(bills []core.TransportBill, now time.Time) DashboardStats {
	thisYear, thisMonth, _ := now.Date()
	prev := now.AddDate(0, -1, -now.Day()+1)
	lastYear, lastMonth, _ := prev.Date()

	d := DashboardStats{
		TopRoutes:     topRoutes(bills, topRoutesDashboard),
		TopVehicles:   rankVehicles(bills, topVehiclesDashboard),
		RecentEntries: recentEntries(bills),
		MonthlyTrend:  seededTrend(bills, now),
	}

	vehicles := map[string]struct{}{}
	var totalRevenue, lastRevenue float64
	for _, b := range bills {
		vehicles[b.VehicleNo] = struct{}{}
		totalRevenue += b.TransportBillData.Total
		y, m := b.Date.YearMonth()
		switch {
		case y == thisYear && time.Month(m) == thisMonth:
			d.TripsThisMonth++
			d.MonthlyRevenue += b.TransportBillData.Total
		case y == lastYear && time.Month(m) == lastMonth:
			d.TripsLastMonth++
			lastRevenue += b.TransportBillData.Total
		}
	}
	// Active vehicles and the per-trip average are fleet-wide figures
	// over the whole list, not this month's slice.
	d.ActiveVehicles = len(vehicles)
	d.AvgRevenuePerTrip = ratio(totalRevenue, float64(len(bills)))
	d.RevenueGrowth = growth(d.MonthlyRevenue, lastRevenue)
	return d
}

func statusDistribution(bills []core.TransportBill) []StatusCount {
	counts := map[core.BillStatus]int{}
	for _, b := range bills {
		counts[b.TransportBillData.Status]++
	}
	out := make([]StatusCount, 0, len(core.AllStatuses()))
	for _, st := range core.AllStatuses() {
		out = append(out, StatusCount{
			Status:  st,
			Count:   counts[st],
			Percent: ratio(float64(counts[st])*100, float64(len(bills))),
		})
	}
	return out
}

// topRoutes ranks routes by revenue, highest first.
func topRoutes(bills []core.TransportBill, limit int) []RouteStat {
	byRoute := map[string]*RouteStat{}
	order := []string{}
	for _, b := range bills {
		route := b.Route()
		st, ok := byRoute[route]
		if !ok {
			st = &RouteStat{Route: route}
			byRoute[route] = st
			order = append(order, route)
		}
		st.Trips++
		st.Revenue += b.TransportBillData.Total
	}
	out := make([]RouteStat, 0, len(order))
	for _, route := range order {
		out = append(out, *byRoute[route])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return clamp(out, limit)
}

// rankVehicles ranks by trip count, not revenue. The two rankings use
// different keys on purpose: the vehicle board answers "which trucks
// run the most", the route board "which lanes earn the most".
func rankVehicles(bills []core.TransportBill, limit int) []VehicleStat {
	byVehicle := map[string]*VehicleStat{}
	order := []string{}
	for _, b := range bills {
		st, ok := byVehicle[b.VehicleNo]
		if !ok {
			st = &VehicleStat{VehicleNo: b.VehicleNo}
			byVehicle[b.VehicleNo] = st
			order = append(order, b.VehicleNo)
		}
		st.Trips++
		st.Revenue += b.TransportBillData.Total
	}
	out := make([]VehicleStat, 0, len(order))
	for _, v := range order {
		out = append(out, *byVehicle[v])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Trips > out[j].Trips })
	return clamp(out, limit)
}

func rankOwners(bills []core.TransportBill) []OwnerStat {
	byOwner := map[string]*OwnerStat{}
	order := []string{}
	for _, b := range bills {
		owner := b.OwnerLabel()
		st, ok := byOwner[owner]
		if !ok {
			st = &OwnerStat{Owner: owner}
			byOwner[owner] = st
			order = append(order, owner)
		}
		st.Trips++
		st.Revenue += b.TransportBillData.Total
	}
	out := make([]OwnerStat, 0, len(order))
	for _, o := range order {
		out = append(out, *byOwner[o])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Trips > out[j].Trips })
	return clamp(out, topOwners)
}

// observedTrend buckets by calendar month, keeps only months that
// actually have bills, in chronological order, capped to the most
// recent twelve.
func observedTrend(bills []core.TransportBill) []MonthPoint {
	type key struct {
		year  int
		month int
	}
	buckets := map[key]*MonthPoint{}
	for _, b := range bills {
		y, m := b.Date.YearMonth()
		if y == 0 {
			continue
		}
		k := key{y, m}
		pt, ok := buckets[k]
		if !ok {
			pt = &MonthPoint{
				Year:  y,
				Month: time.Month(m),
				Label: monthLabel(y, time.Month(m)),
			}
			buckets[k] = pt
		}
		pt.Trips++
		pt.Revenue += b.TransportBillData.Total
	}
	out := make([]MonthPoint, 0, len(buckets))
	for _, pt := range buckets {
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	if len(out) > trendMonthsMax {
		out = out[len(out)-trendMonthsMax:]
	}
	return out
}

// seededTrend pre-seeds the last dashboardTrendLen calendar months so
// the chart never has gaps, then fills in what the bills cover.
func seededTrend(bills []core.TransportBill, now time.Time) []MonthPoint {
	type key struct {
		year  int
		month int
	}
	out := make([]MonthPoint, 0, dashboardTrendLen)
	index := map[key]int{}
	for i := dashboardTrendLen - 1; i >= 0; i-- {
		t := now.AddDate(0, -i, -now.Day()+1)
		y, m, _ := t.Date()
		index[key{y, int(m)}] = len(out)
		out = append(out, MonthPoint{Year: y, Month: m, Label: monthLabel(y, m)})
	}
	for _, b := range bills {
		y, m := b.Date.YearMonth()
		if i, ok := index[key{y, m}]; ok {
			out[i].Trips++
			out[i].Revenue += b.TransportBillData.Total
		}
	}
	return out
}

// recentEntries returns the latest bills by date, newest first.
func recentEntries(bills []core.TransportBill) []core.TransportBill {
	out := make([]core.TransportBill, len(bills))
	copy(out, bills)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Time.After(out[j].Date.Time)
	})
	return clamp(out, recentEntriesLen)
}

// halfYearGrowth compares the last six months against the six before
// them for both revenue and trip count. The current period is open-ended
// upward, so a forward-dated bill still counts as current.
func halfYearGrowth(bills []core.TransportBill, now time.Time) (revenue, trips float64) {
	mid := now.AddDate(0, -6, 0)
	start := now.AddDate(0, -12, 0)
	var curRev, prevRev float64
	var curTrips, prevTrips int
	for _, b := range bills {
		d := b.Date.Time
		switch {
		case !d.Before(mid):
			curRev += b.TransportBillData.Total
			curTrips++
		case !d.Before(start) && d.Before(mid):
			prevRev += b.TransportBillData.Total
			prevTrips++
		}
	}
	return growth(curRev, prevRev), growth(float64(curTrips), float64(prevTrips))
}

func monthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// growth is the percentage change from prev to cur, 0 when there is no
// previous period to compare against.
func growth(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp[T any](s []T, limit int) []T {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
