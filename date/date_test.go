package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-01-10", New(2024, 1, 10), false},
		{"2024-3-2", New(2024, 3, 2), false},
		{"10/01/2024", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, want error: %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got, want := New(2024, 3, 2).String(), "2024-03-02"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	// New normalizes out of range days.
	if got, want := New(2024, 2, 30).String(), "2024-03-01"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
	if got, want := FromTime(tm), New(2024, 1, 10); got != want {
		t.Errorf("FromTime(%v) = %v, want %v", tm, got, want)
	}
}

func TestIsZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Errorf("Date{}.IsZero() = false, want true")
	}
	if New(2024, 1, 1).IsZero() {
		t.Errorf("New(2024, 1, 1).IsZero() = true, want false")
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 1, 10), New(2024, 3, 2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is inconsistent: %d %d %d", a.Compare(b), b.Compare(a), a.Compare(a))
	}
	if !a.Before(b) || !b.After(a) || !a.Equal(New(2024, 1, 10)) {
		t.Errorf("Before/After/Equal are inconsistent")
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, 3, 2)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got, want := string(b), `"2024-03-02"`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v, want %v", back, d)
	}
}
