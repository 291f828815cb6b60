package schedule

import "testing"

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"09:00:00", 540, false},
		{"17:45", 1065, false},
		{"00:00", 0, false},
		{"23:59:59", 1439, false},
		{"24:00", 0, true},
		{"9", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(540); got != "09:00:00" {
		t.Errorf("FormatClock(540) = %q, want 09:00:00", got)
	}
	if got := FormatClock(1065); got != "17:45:00" {
		t.Errorf("FormatClock(1065) = %q, want 17:45:00", got)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: 600, End: 630} // 10:00-10:30

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{600, 630}, true},
		{"contained", Interval{605, 625}, true},
		{"overlaps start", Interval{585, 615}, true},
		{"overlaps end", Interval{615, 645}, true},
		{"touching before", Interval{570, 600}, false},
		{"touching after", Interval{630, 660}, false},
		{"disjoint", Interval{700, 730}, false},
	}

	for _, c := range cases {
		if got := a.Overlaps(c.other); got != c.want {
			t.Errorf("%s: Overlaps(%v) = %v, want %v", c.name, c.other, got, c.want)
		}
	}
}
