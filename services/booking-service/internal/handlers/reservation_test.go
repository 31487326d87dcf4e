package handlers

import "testing"

func TestDepositStatusForFee(t *testing.T) {
	cases := []struct {
		name     string
		feeCents int64
		enabled  bool
		want     string
	}{
		{"fee with deposits enabled", 5000, true, "pending"},
		{"fee without a configured provider", 5000, false, "none"},
		{"free resource", 0, true, "none"},
		{"free resource, no provider", 0, false, "none"},
	}
	for _, c := range cases {
		if got := depositStatusForFee(c.feeCents, c.enabled); got != c.want {
			t.Errorf("%s: depositStatusForFee(%d, %v) = %q, want %q", c.name, c.feeCents, c.enabled, got, c.want)
		}
	}
}
