package url

import "github.com/sdarwin/url/internal/errorutil"

// Error is a string type that implements the error interface, the same
// sentinel-error idiom used throughout this module.
type Error string

func (e Error) Error() string { return string(e) }

// Grammar reports that the error originates from rejecting malformed
// input against an RFC 3986 production, as opposed to a resource or
// programming error.
func (e Error) Grammar() bool {
	switch e {
	case ErrTooLarge, ErrStaleIterator:
		return false
	}
	return true
}

const (
	// ErrInvalidScheme is returned when a scheme does not match the
	// scheme production.
	ErrInvalidScheme Error = "url: invalid scheme"
	// ErrInvalidAuthority is returned when an authority component does
	// not parse.
	ErrInvalidAuthority Error = "url: invalid authority"
	// ErrInvalidUserinfo is returned when a userinfo component does not parse.
	ErrInvalidUserinfo Error = "url: invalid userinfo"
	// ErrInvalidHost is returned when a host does not parse as an
	// IP-literal, IPv4address or reg-name.
	ErrInvalidHost Error = "url: invalid host"
	// ErrInvalidPort is returned when a port string contains non-digit bytes.
	ErrInvalidPort Error = "url: invalid port"
	// ErrInvalidPath is returned when a path violates the
	// context-sensitive path production.
	ErrInvalidPath Error = "url: invalid path"
	// ErrInvalidQuery is returned when a query component fails to
	// validate or decode.
	ErrInvalidQuery Error = "url: invalid query"
	// ErrInvalidFragment is returned when a fragment component fails to
	// validate or decode.
	ErrInvalidFragment Error = "url: invalid fragment"
	// ErrIllegalReservedChar is returned when a raw reserved byte
	// appears where only unreserved bytes or pct-encoded triplets are allowed.
	ErrIllegalReservedChar Error = "url: illegal reserved character in encoded input"
	// ErrBadPctHexdig is returned when a '%' is not followed by two hex digits.
	ErrBadPctHexdig Error = "url: invalid percent-encoding"
	// ErrTooLarge is returned when a requested length exceeds the
	// implementation maximum buffer size.
	ErrTooLarge Error = "url: requested size exceeds maximum"
	// ErrEmptyInput is returned by Parse when given an empty string.
	ErrEmptyInput Error = "url: empty input"
	// ErrNoAuthority reports that an authority component is required but
	// absent. No function in this package returns it.
	ErrNoAuthority Error = "url: no authority component"
)

func wrapf(sentinel error, format string, args ...any) error {
	wargs := make([]any, 0, len(args)+1)
	wargs = append(wargs, format)
	wargs = append(wargs, args...)
	return errorutil.NewWrapperError(sentinel, wargs...) //nolint:errtrace
}
