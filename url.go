package url

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/sdarwin/url/internal/util"
)

// Url is a mutable, percent-encoded URI reference. Obtain one from New or
// Parse; the zero value has no buffer and is not ready for use (its
// methods panic on the nil buffer).
type Url struct {
	buf *buffer
	t   index
	gen uint64 // bumped on every mutation; invalidates in-flight iterators
}

// New returns an empty Url configured with the given options.
func New(opts ...Option) *Url {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	u := &Url{buf: newBuffer(cfg.alloc)}
	if cfg.initCap > 0 {
		_ = u.buf.reserve(cfg.initCap)
	}
	return u
}

// Parse parses s as a complete URI-reference and returns a new Url.
func Parse[T byteseq](s T, opts ...Option) (*Url, error) {
	p, err := parseURIReference(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u := New(opts...)
	if err := u.loadParts(p); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// MustParse is like Parse but panics on error; intended for tests and
// package-level constant-like URLs, matching the Must* helpers used
// throughout this module's ecosystem.
func MustParse[T byteseq](s T) *Url {
	return util.Must2(Parse(s))
}

// loadParts rebuilds the buffer and index table from a freshly parsed
// parts value, used by Parse, UnmarshalText and Normalize. The parts
// strings are already validated percent-encoded text and are written
// verbatim.
func (u *Url) loadParts(p parts) error {
	buf := util.GetBytesBuffer()
	defer util.FreeBytesBuffer(buf)
	var o [9]int

	write := func(s string) { buf.WriteString(s) }
	sb := func() []byte { return buf.Bytes() }

	o[0] = 0
	if p.hasScheme {
		write(p.scheme)
		write(":")
	}
	o[1] = len(sb())

	if p.hasAuthority {
		write("//")
	}
	if p.hasAuthority && p.hasUser {
		write(p.user)
	}
	o[2] = len(sb())

	if p.hasAuthority {
		switch {
		case p.hasPassword:
			write(":")
			write(p.password)
			write("@")
		case p.hasUser:
			write("@")
		}
	}
	o[3] = len(sb())

	if p.hasAuthority {
		write(hostLiteral(p.host, p.hostKind))
	}
	o[4] = len(sb())

	if p.hasPort {
		write(":")
		write(p.port)
	}
	o[5] = len(sb())

	write(p.path)
	o[6] = len(sb())

	if p.hasQuery {
		write("?")
		write(p.query)
	}
	o[7] = len(sb())

	if p.hasFragment {
		write("#")
		write(p.fragment)
	}
	o[8] = len(sb())

	if err := u.buf.growTo(len(sb())); err != nil {
		return errtrace.Wrap(err)
	}
	u.buf.data = u.buf.data[:len(sb())+1]
	copy(u.buf.data, sb())
	u.buf.data[len(sb())] = 0

	u.t = index{
		o:          o,
		hostKind:   p.hostKind,
		nseg:       countSegments(p.path),
		nparam:     countParams(p.query),
	}
	if p.hasPort {
		if n, err := strconv.ParseUint(p.port, 10, 16); err == nil {
			u.t.portNumber = uint16(n)
			u.t.hasPort = true
		}
	}
	u.gen++
	return nil
}

// hostLiteral renders a parsed host back into its stored form.
// parseAuthorityInto keeps the "[" "]" brackets of an IP-literal in
// p.host, so every host kind is returned unchanged.
func hostLiteral(host string, _ HostKind) string { return host }

// --- View interface -------------------------------------------------

func (u *Url) String() string                { return readString(u.buf.bytes(), &u.t) }
func (u *Url) Bytes() []byte                  { return u.buf.bytes() }
func (u *Url) CString() []byte                { return u.buf.cstr() }
func (u *Url) HasScheme() bool                { return readHasScheme(&u.t) }
func (u *Url) Scheme() string                 { return readScheme(u.buf.bytes(), &u.t) }
func (u *Url) SchemeID() Scheme               { return LookupScheme(u.Scheme()) }
func (u *Url) HasAuthority() bool             { return u.t.hasAuthority() }
func (u *Url) HasUser() bool                  { return readHasUser(&u.t) }
func (u *Url) EncodedUser() string            { return readEncodedUser(u.buf.bytes(), &u.t) }
func (u *Url) User() string                   { return readUser(u.buf.bytes(), &u.t) }
func (u *Url) HasPassword() bool              { return readHasPassword(&u.t) }
func (u *Url) EncodedPassword() string        { return readEncodedPassword(u.buf.bytes(), &u.t) }
func (u *Url) Password() string               { return readPassword(u.buf.bytes(), &u.t) }
func (u *Url) EncodedHost() string            { return readEncodedHost(u.buf.bytes(), &u.t) }
func (u *Url) Host() string                   { return readHost(u.buf.bytes(), &u.t) }
func (u *Url) HostKind() HostKind             { return u.t.hostKind }
func (u *Url) HasPort() bool                  { return readHasPort(&u.t) }
func (u *Url) Port() string                   { return readPort(u.buf.bytes(), &u.t) }
func (u *Url) PortNumber() (uint16, bool)     { return u.t.portNumber, u.t.hasPort }
func (u *Url) Path() string                   { return readPath(u.buf.bytes(), &u.t) }
func (u *Url) HasQuery() bool                 { return readHasQuery(&u.t) }
func (u *Url) EncodedQuery() string           { return readEncodedQuery(u.buf.bytes(), &u.t) }
func (u *Url) Query() Values                  { return readQueryValues(u.buf.bytes(), &u.t) }
func (u *Url) HasFragment() bool              { return readHasFragment(&u.t) }
func (u *Url) EncodedFragment() string        { return readEncodedFragment(u.buf.bytes(), &u.t) }
func (u *Url) Fragment() string               { return readFragment(u.buf.bytes(), &u.t) }

// --- Lifecycle --------------------------------------------------------

// Len returns the encoded length of the URL in bytes, excluding the
// trailing NUL.
func (u *Url) Len() int { return u.buf.len() }

// Size is an alias for Len, matching the original's size() accessor.
func (u *Url) Size() int { return u.Len() }

// Empty reports whether the URL is the empty string.
func (u *Url) Empty() bool { return u.buf.len() == 0 }

// CapacityInBytes returns the buffer's allocated capacity, including the
// byte reserved for the trailing NUL.
func (u *Url) CapacityInBytes() int { return u.buf.cap() }

// Reserve grows the buffer's capacity to at least n bytes without
// changing the URL's logical content.
func (u *Url) Reserve(n int) error { return errtrace.Wrap(u.buf.reserve(n)) }

// Clear resets the URL to the empty string, retaining buffer capacity.
func (u *Url) Clear() {
	u.buf.clear()
	u.t = index{}
	u.gen++
}

// Clone returns a deep, independent copy of u.
func (u *Url) Clone() *Url {
	u2 := &Url{buf: newBuffer(u.buf.alloc), t: u.t}
	_ = u2.buf.growTo(u.buf.len())
	u2.buf.data = u2.buf.data[:len(u.buf.data)]
	copy(u2.buf.data, u.buf.data)
	return u2
}

// Equal reports whether u and other hold byte-identical encoded URLs.
func (u *Url) Equal(other *Url) bool {
	if other == nil {
		return false
	}
	return u.String() == other.String()
}

// MarshalText implements encoding.TextMarshaler.
func (u *Url) MarshalText() ([]byte, error) {
	b := make([]byte, len(u.Bytes()))
	copy(b, u.Bytes())
	return b, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Url) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		u.Clear()
		return nil
	}
	p, err := parseURIReference(text)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.loadParts(p))
}
