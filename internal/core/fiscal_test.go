package core

import (
	"testing"
	"time"
)

func TestFinancialYear(t *testing.T) {
	cases := []struct {
		d    Date
		want string
	}{
		{NewDate(2024, 3, 15), "2023-24"},
		{NewDate(2024, 3, 31), "2023-24"},
		{NewDate(2024, 4, 1), "2024-25"},
		{NewDate(2024, 12, 31), "2024-25"},
		{NewDate(2025, 1, 1), "2024-25"},
		{NewDate(1999, 6, 1), "1999-00"},
	}
	for _, tc := range cases {
		if got := FinancialYear(tc.d); got != tc.want {
			t.Fatalf("FinancialYear(%s) = %s, want %s", tc.d.FormString(), got, tc.want)
		}
	}
}

func TestFinancialYearOptions(t *testing.T) {
	now := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	opts := FinancialYearOptions(now)
	if len(opts) != 8 {
		t.Fatalf("expected 8 options, got %d", len(opts))
	}
	if opts[0] != "2027-28" || opts[len(opts)-1] != "2020-21" {
		t.Fatalf("unexpected range: %v", opts)
	}
	for i := 1; i < len(opts); i++ {
		if opts[i] >= opts[i-1] {
			t.Fatalf("options not newest-first: %v", opts)
		}
	}
	if CurrentFinancialYear(now) != "2025-26" {
		t.Fatalf("current FY = %s", CurrentFinancialYear(now))
	}
}
