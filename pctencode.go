package url

import (
	"braces.dev/errtrace"

	"github.com/sdarwin/url/internal/util"
)

const upperhex = "0123456789ABCDEF"

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// byteseq is the generic constraint used throughout this package so
// setters accept either a string or a []byte without forcing a copy.
type byteseq interface{ ~string | ~[]byte }

// encodedLen returns the number of bytes raw expands to when every byte
// outside set's allowed class is escaped as "%HH".
func encodedLen[T byteseq](raw T, set pctSet) int {
	n := len(raw)
	for i := 0; i < len(raw); i++ {
		if !allowedUnencoded(set, raw[i]) {
			n += 2
		}
	}
	return n
}

// encode writes the percent-encoded form of raw into a freshly allocated
// byte slice sized by encodedLen.
func encode[T byteseq](raw T, set pctSet) []byte {
	dst := make([]byte, encodedLen(raw, set))
	j := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if allowedUnencoded(set, c) {
			dst[j] = c
			j++
			continue
		}
		dst[j] = '%'
		dst[j+1] = upperhex[c>>4]
		dst[j+2] = upperhex[c&0xf]
		j += 3
	}
	return dst
}

// validatePct checks that every byte of s is either allowed unencoded by
// set or part of a well-formed "%HH" triplet.
func validatePct[T byteseq](s T, set pctSet) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' {
			if i+2 >= len(s) {
				return errtrace.Wrap(ErrBadPctHexdig)
			}
			if _, ok := unhex(s[i+1]); !ok {
				return errtrace.Wrap(ErrBadPctHexdig)
			}
			if _, ok := unhex(s[i+2]); !ok {
				return errtrace.Wrap(ErrBadPctHexdig)
			}
			i += 2
			continue
		}
		if !allowedUnencoded(set, c) {
			return errtrace.Wrap(wrapf(ErrIllegalReservedChar, "byte %q not allowed in %s", c, set.name))
		}
	}
	return nil
}

// decode unescapes a validated percent-encoded string, returning the raw
// bytes it stands for.
func decode[T byteseq](s T, set pctSet) ([]byte, error) {
	if err := validatePct(s, set); err != nil {
		return nil, errtrace.Wrap(err)
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%':
			hi, _ := unhex(s[i+1])
			lo, _ := unhex(s[i+2])
			sb.WriteByte(hi<<4 | lo)
			i += 2
		default:
			sb.WriteByte(c)
		}
	}
	return []byte(sb.String()), nil
}
