package selector

import "testing"

func TestParseNth(t *testing.T) {
	cases := []struct {
		arg     string
		wantA   int16
		wantB   int16
		wantErr bool
	}{
		{"even", 2, 0, false},
		{"odd", 2, 1, false},
		{"0", 0, 0, false},
		{"3", 0, 3, false},
		{"2n", 2, 0, false},
		{"2n+1", 2, 1, false},
		{"-n+3", -1, 3, false},
		{"n", 1, 0, false},
		{"-2n - 1", -2, -1, false},
		{"garbage(", 0, 0, true},
	}

	for _, c := range cases {
		a, b, err := parseNth(c.arg)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseNth(%q): expected error, got a=%d b=%d", c.arg, a, b)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseNth(%q): unexpected error: %v", c.arg, err)
		}
		if a != c.wantA || b != c.wantB {
			t.Errorf("parseNth(%q) = (%d, %d), want (%d, %d)", c.arg, a, b, c.wantA, c.wantB)
		}
	}
}
