package session

import "testing"

func TestSecondsText(t *testing.T) {
	cases := []struct {
		sec  int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{119, "1:59"},
		{120, "2:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3665, "1:01:05"},
		{-3, "0:00"},
	}
	for _, c := range cases {
		if got := SecondsText(c.sec); got != c.want {
			t.Errorf("SecondsText(%d) = %q; want %q", c.sec, got, c.want)
		}
	}
}
