package availability

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{15, "15 min"},
		{30, "30 min"},
		{60, "1 tim"},
		{90, "1 tim 30 min"},
		{120, "2 tim"},
		{150, "2 tim 30 min"},
		{1440, "1 dygn"},
		{2880, "2 dygn"},
		{1500, "25 tim"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}
