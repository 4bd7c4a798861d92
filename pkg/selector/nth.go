package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNth parses the `An+B` argument of `:nth-child(...)` /
// `:nth-last-child(...)`, spec.md §4.4/§4.5. Accepts the CSS shorthands
// `even`, `odd`, a bare `n`-less integer (`b` only), and the general
// `[+-]?An[+-]B` form with optional whitespace around the sign.
func parseNth(arg string) (a, b int16, err error) {
	s := strings.ToLower(strings.TrimSpace(arg))

	switch s {
	case "even":
		return 2, 0, nil
	case "odd":
		return 2, 1, nil
	}

	idx := strings.IndexByte(s, 'n')
	if idx < 0 {
		n, e := strconv.Atoi(s)
		if e != nil {
			return 0, 0, fmt.Errorf("%w: bad nth-child argument %q", ErrUnexpectedToken, arg)
		}
		return 0, int16(n), nil
	}

	coef := strings.TrimSpace(s[:idx])
	rest := strings.TrimSpace(s[idx+1:])

	switch coef {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		n, e := strconv.Atoi(coef)
		if e != nil {
			return 0, 0, fmt.Errorf("%w: bad nth-child coefficient in %q", ErrUnexpectedToken, arg)
		}
		a = int16(n)
	}

	if rest == "" {
		return a, 0, nil
	}

	rest = strings.ReplaceAll(rest, " ", "")
	n, e := strconv.Atoi(rest)
	if e != nil {
		return 0, 0, fmt.Errorf("%w: bad nth-child offset in %q", ErrUnexpectedToken, arg)
	}

	return a, int16(n), nil
}
