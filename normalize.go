package url

import (
	"braces.dev/errtrace"

	"github.com/sdarwin/url/internal/util"
)

// NormalizeScheme lower-cases the scheme in place per RFC 3986 §6.2.3,
// grounded in boost.url's url::normalize_scheme (SPEC_FULL.md §11).
func (u *Url) NormalizeScheme() error {
	s := u.Scheme()
	if s == "" {
		return nil
	}
	lower := util.LCase(s)
	if lower == s {
		return nil
	}
	return errtrace.Wrap(u.spliceSingle(CompScheme, []byte(lower+":")))
}

// Normalize applies NormalizeScheme and additionally uppercases the hex
// digits of every percent-triplet across the whole URL, without changing
// the decoded meaning of any component (SPEC_FULL.md §11).
func (u *Url) Normalize() error {
	if err := u.NormalizeScheme(); err != nil {
		return errtrace.Wrap(err)
	}
	full := u.String()
	normalized := normalizePctCase(full)
	if normalized == full {
		return nil
	}
	p, err := parseURIReference(normalized)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.loadParts(p))
}

func normalizePctCase(s string) string {
	b := []byte(s)
	for i := 0; i+2 < len(b); i++ {
		if b[i] == '%' && isHexDigit(b[i+1]) && isHexDigit(b[i+2]) {
			b[i+1] = upperhexByte(b[i+1])
			b[i+2] = upperhexByte(b[i+2])
			i += 2
		}
	}
	return string(b)
}

func upperhexByte(c byte) byte {
	if c >= 'a' && c <= 'f' {
		return c - ('a' - 'A')
	}
	return c
}
