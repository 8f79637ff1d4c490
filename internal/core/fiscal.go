package core

import (
	"fmt"
	"time"
)

// Financial years run April through March and are labeled "YYYY-YY" after
// the calendar year they start in: 2024-03-15 falls in "2023-24",
// 2024-04-01 in "2024-25".

// FinancialYear returns the label of the financial year containing d.
func FinancialYear(d Date) string {
	t := d.UTC()
	year := t.Year()
	if int(t.Month()) >= int(time.April) {
		return financialYearLabel(year)
	}
	return financialYearLabel(year - 1)
}

// CurrentFinancialYear returns the label for the financial year containing
// now.
func CurrentFinancialYear(now time.Time) string {
	return FinancialYear(Date{Time: now})
}

// FinancialYearOptions lists selectable financial year labels around now,
// newest first: the current year, the five before it and the two after.
func FinancialYearOptions(now time.Time) []string {
	start := startYear(Date{Time: now})
	options := make([]string, 0, 8)
	for y := start + 2; y >= start-5; y-- {
		options = append(options, financialYearLabel(y))
	}
	return options
}

func startYear(d Date) int {
	t := d.UTC()
	if int(t.Month()) >= int(time.April) {
		return t.Year()
	}
	return t.Year() - 1
}

func financialYearLabel(start int) string {
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
