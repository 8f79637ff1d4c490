package core

import (
	"encoding/json"
	"testing"
)

func TestDateUnmarshalShapes(t *testing.T) {
	cases := []struct {
		in   string
		y, m, d int
	}{
		{`"2025-07-30T00:00:00.000Z"`, 2025, 7, 30},
		{`"2025-07-30T10:15:00Z"`, 2025, 7, 30},
		{`"2025-07-30"`, 2025, 7, 30},
	}
	for _, tc := range cases {
		var d Date
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		y, m := d.YearMonth()
		if y != tc.y || m != tc.m || d.UTC().Day() != tc.d {
			t.Fatalf("unmarshal %s = %v", tc.in, d)
		}
	}

	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err != nil || !d.IsZero() {
		t.Fatalf("null should decode to zero date (err=%v)", err)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &d); err == nil {
		t.Fatal("expected error for junk date")
	}
}

// Form round-trip must reproduce the same calendar date at every month
// boundary, including the February and December edges.
func TestFormRoundTrip(t *testing.T) {
	boundaries := []string{
		"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30",
		"2024-05-31", "2024-06-30", "2024-07-31", "2024-08-31",
		"2024-09-30", "2024-10-31", "2024-11-30", "2024-12-31",
	}
	for _, s := range boundaries {
		d, err := ParseFormDate(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		if got := d.FormString(); got != s {
			t.Fatalf("round trip %s -> %s", s, got)
		}
	}
}

func TestZeroDateMarshalsNull(t *testing.T) {
	out, err := json.Marshal(Date{})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "null" {
		t.Fatalf("zero date marshaled as %s", out)
	}
}
