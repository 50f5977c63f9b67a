package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "not-a-date", wantErr: true},
		{in: "2025-13-01", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	// Overflowing days roll into the next month.
	got := New(2025, time.January, 32)
	if want := New(2025, time.February, 1); got != want {
		t.Errorf("New(2025, January, 32) = %v, want %v", got, want)
	}
}

func TestAdd(t *testing.T) {
	d := New(2025, time.February, 28)
	if got, want := d.Add(1), New(2025, time.March, 1); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
	if got, want := d.Add(-28), New(2025, time.January, 31); got != want {
		t.Errorf("Add(-28) = %v, want %v", got, want)
	}
}

func TestRangeDays(t *testing.T) {
	r := NewRange(New(2025, time.January, 30), New(2025, time.February, 2))
	var got []Date
	for d := range r.Days() {
		got = append(got, d)
	}
	want := []Date{
		New(2025, time.January, 30),
		New(2025, time.January, 31),
		New(2025, time.February, 1),
		New(2025, time.February, 2),
	}
	if len(got) != len(want) {
		t.Fatalf("Days() yielded %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Days()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
}

func TestNewRangeSwaps(t *testing.T) {
	from, to := New(2025, time.May, 10), New(2025, time.May, 1)
	r := NewRange(from, to)
	if r.From != to || r.To != from {
		t.Errorf("NewRange did not swap inverted bounds: %v", r)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2025, time.March, 5)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"2025-03-05"` {
		t.Errorf("MarshalJSON() = %s, want %q", data, `"2025-03-05"`)
	}
	var got Date
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}
