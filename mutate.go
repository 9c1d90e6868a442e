package url

import (
	"braces.dev/errtrace"
)

// spliceSingle replaces the entire byte range of component c with content,
// shifting every later offset by the resulting delta. This is the splice
// engine (C5) applied to the common case where the component's own region
// boundaries are exactly what's being replaced (SPEC_FULL.md §4.4's
// resize(id, newLen)).
func (u *Url) spliceSingle(c Component, content []byte) error {
	delta, err := u.buf.splice(u.t.start(c), u.t.end(c), len(content))
	if err != nil {
		return errtrace.Wrap(err)
	}
	u.buf.write(u.t.start(c), content)
	for i := int(c) + 1; i <= int(compEnd); i++ {
		u.t.o[i] += delta
	}
	u.gen++
	return nil
}

// spliceRange replaces the combined region spanning [first, last] with
// content; the caller is responsible for re-deriving offsets strictly
// between first and last afterward (resize(first, last, newLen) in
// SPEC_FULL.md §4.4). Offsets after last are shifted automatically.
func (u *Url) spliceRange(first, last Component, content []byte) error {
	delta, err := u.buf.splice(u.t.start(first), u.t.end(last), len(content))
	if err != nil {
		return errtrace.Wrap(err)
	}
	u.buf.write(u.t.start(first), content)
	for i := int(last) + 1; i <= int(compEnd); i++ {
		u.t.o[i] += delta
	}
	u.gen++
	return nil
}

// ensureAuthority installs an empty "//" authority marker if none exists.
func (u *Url) ensureAuthority() error {
	if u.t.hasAuthority() {
		return nil
	}
	if u.Path() != "" && u.Path()[0:1] != "/" {
		return errtrace.Wrap(wrapf(ErrInvalidPath,
			"cannot add authority: path %q would become ambiguous with '//'; insert a leading '/' first", u.Path()))
	}
	return errtrace.Wrap(u.spliceSingle(CompUser, []byte("//")))
}

// --- scheme -------------------------------------------------------------

// SetScheme validates and sets the scheme from a plain (unencoded) name.
func (u *Url) SetScheme(s string) error { return u.setSchemeStr(string(s)) }

func (u *Url) setSchemeStr(s string) error {
	if s == "" {
		return errtrace.Wrap(u.RemoveScheme())
	}
	if !isAlpha(s[0]) {
		return errtrace.Wrap(wrapf(ErrInvalidScheme, "%q", s))
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.') {
			return errtrace.Wrap(wrapf(ErrInvalidScheme, "%q", s))
		}
	}
	if err := u.fixupPathForSchemeChange(true); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.spliceSingle(CompScheme, []byte(s+":")))
}

// SetSchemeID sets a known scheme by constant, skipping validation.
func (u *Url) SetSchemeID(id Scheme) error {
	if id == SchemeUnknown || id == SchemeNone {
		panic(Error("url: SetSchemeID requires a known scheme constant"))
	}
	return errtrace.Wrap(u.spliceSingle(CompScheme, []byte(id.String()+":")))
}

// RemoveScheme removes the scheme component, if any.
func (u *Url) RemoveScheme() error {
	if err := u.fixupPathForSchemeChange(false); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.spliceSingle(CompScheme, nil))
}

// fixupPathForSchemeChange implements SPEC_FULL.md §4.5 step 3 / §9(a):
// when gaining a scheme, a schemeless path-noscheme whose first segment
// contains ':' would become ambiguous with path-rootless's relaxed
// constraint (which is fine) -- no rewrite needed on gain. When losing a
// scheme from a rootless path whose first segment contains ':', the
// result would wrongly parse that segment as a scheme on re-parse, so a
// leading "./" is inserted to keep it a path-noscheme.
func (u *Url) fixupPathForSchemeChange(gaining bool) error {
	if u.HasAuthority() || gaining {
		return nil
	}
	path := u.Path()
	if path == "" || path[0] == '/' {
		return nil
	}
	seg := path
	if i := indexByte(path, '/'); i >= 0 {
		seg = path[:i]
	}
	if indexByte(seg, ':') < 0 {
		return nil
	}
	return errtrace.Wrap(u.spliceSingle(CompPath, []byte("./"+path)))
}

// --- userinfo -------------------------------------------------------------

// SetEncodedUser sets the user sub-component from an already percent-encoded string.
func (u *Url) SetEncodedUser(s string) error {
	if err := validatePct(s, setUser); err != nil {
		return errtrace.Wrap(wrapf(ErrInvalidUserinfo, "%v", err))
	}
	if err := u.ensureAuthority(); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.spliceSingle(CompUser, append([]byte("//"), s...)); err != nil {
		return errtrace.Wrap(err)
	}
	if u.t.length(CompPassword) == 0 {
		return errtrace.Wrap(u.spliceSingle(CompPassword, []byte("@")))
	}
	return nil
}

// SetUser percent-encodes and sets the user sub-component from plain text.
func (u *Url) SetUser(s string) error {
	return errtrace.Wrap(u.SetEncodedUser(string(encode(s, setUser))))
}

// RemoveUser clears the user sub-component. If no password follows, the
// whole userinfo (including its bare '@') is removed too.
func (u *Url) RemoveUser() error {
	if !u.t.hasAuthority() {
		return nil
	}
	if u.EncodedPassword() == "" && !u.HasPassword() {
		if err := u.spliceSingle(CompPassword, nil); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return errtrace.Wrap(u.spliceSingle(CompUser, []byte("//")))
}

// SetEncodedPassword sets the password sub-component from an
// already-encoded string, creating an empty user if none exists.
func (u *Url) SetEncodedPassword(s string) error {
	if err := validatePct(s, setPassword); err != nil {
		return errtrace.Wrap(wrapf(ErrInvalidUserinfo, "%v", err))
	}
	if err := u.ensureAuthority(); err != nil {
		return errtrace.Wrap(err)
	}
	content := append([]byte(":"), s...)
	content = append(content, '@')
	return errtrace.Wrap(u.spliceSingle(CompPassword, content))
}

// SetPassword percent-encodes and sets the password sub-component from plain text.
func (u *Url) SetPassword(s string) error {
	return errtrace.Wrap(u.SetEncodedPassword(string(encode(s, setPassword))))
}

// RemovePassword clears the password sub-component, retaining a bare '@'
// if a user is still present (SPEC_FULL.md §8.3 scenario 2).
func (u *Url) RemovePassword() error {
	if !u.t.hasAuthority() {
		return nil
	}
	if u.HasUser() {
		return errtrace.Wrap(u.spliceSingle(CompPassword, []byte("@")))
	}
	return errtrace.Wrap(u.spliceSingle(CompPassword, nil))
}

// SetEncodedUserinfo sets user and password together from a single
// "user[:password]" encoded string, per SPEC_FULL.md §11.
func (u *Url) SetEncodedUserinfo(s string) error {
	str := string(s)
	if i := indexByte(str, ':'); i >= 0 {
		if err := u.SetEncodedUser(str[:i]); err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(u.SetEncodedPassword(str[i+1:]))
	}
	if err := u.RemovePassword(); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.SetEncodedUser(str))
}

// SetUserinfo is the plain-text counterpart of SetEncodedUserinfo; the
// split on ':' happens before encoding so a literal ':' in the plain
// user/password text must be passed through SetUser/SetPassword instead.
func (u *Url) SetUserinfo(s string) error {
	str := string(s)
	if i := indexByte(str, ':'); i >= 0 {
		if err := u.SetUser(str[:i]); err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(u.SetPassword(str[i+1:]))
	}
	if err := u.RemovePassword(); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.SetUser(str))
}

// RemoveUserinfo removes both user and password sub-components.
func (u *Url) RemoveUserinfo() error {
	if !u.t.hasAuthority() {
		return nil
	}
	if err := u.spliceSingle(CompPassword, nil); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.spliceSingle(CompUser, []byte("//")))
}

// --- host -----------------------------------------------------------------

// SetEncodedHost sets the host from an already-encoded string, branching
// on its form (IP-literal, IPv4address or reg-name) per SPEC_FULL.md §4.5.
func (u *Url) SetEncodedHost(s string) error {
	str := string(s)
	kind, err := parseHost(str)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.ensureAuthority(); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.spliceSingle(CompHost, []byte(str)); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.hostKind = kind
	return nil
}

// SetHost percent-encodes and sets the host from plain text, recognizing
// a dotted-decimal IPv4 literal automatically.
func (u *Url) SetHost(s string) error {
	str := string(s)
	if _, err := ParseIPv4(str); err == nil {
		return errtrace.Wrap(u.SetEncodedHost(str))
	}
	return errtrace.Wrap(u.SetEncodedHost(string(encode(str, setHost))))
}

// SetHostIPv4 sets the host to a numeric IPv4 address.
func (u *Url) SetHostIPv4(addr IPv4Addr) error {
	if err := u.ensureAuthority(); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.spliceSingle(CompHost, []byte(addr.String())); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.hostKind = HostIPv4
	return nil
}

// SetHostIPv6 sets the host to a numeric IPv6 address, wrapped in brackets.
func (u *Url) SetHostIPv6(addr IPv6Addr) error {
	if err := u.ensureAuthority(); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.spliceSingle(CompHost, []byte("["+addr.String()+"]")); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.hostKind = HostIPv6
	return nil
}

// --- port -------------------------------------------------------------

// SetPort sets the port from a decimal string, accepting leading zeros
// (the string is kept verbatim; see SPEC_FULL.md §9(b) for the numeric
// accessor's behavior on overflow).
func (u *Url) SetPort(s string) error {
	str := string(s)
	for i := 0; i < len(str); i++ {
		if !isDigit(str[i]) {
			return errtrace.Wrap(wrapf(ErrInvalidPort, "%q", str))
		}
	}
	if err := u.ensureAuthority(); err != nil {
		return errtrace.Wrap(err)
	}
	var content []byte
	if str != "" {
		content = append([]byte(":"), str...)
	}
	if err := u.spliceSingle(CompPort, content); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.hasPort = false
	u.t.portNumber = 0
	if n, err := parsePortNumber(str); err == nil {
		u.t.portNumber = n
		u.t.hasPort = true
	}
	return nil
}

func parsePortNumber(s string) (uint16, error) {
	if s == "" {
		return 0, errtrace.Wrap(ErrInvalidPort)
	}
	var n uint32
	for i := 0; i < len(s); i++ {
		n = n*10 + uint32(s[i]-'0')
		if n > 0xffff {
			return 0, errtrace.Wrap(ErrInvalidPort)
		}
	}
	return uint16(n), nil
}

// SetPortNumber sets the port from a numeric value.
func (u *Url) SetPortNumber(n uint16) error {
	return errtrace.Wrap(u.SetPort(itoa(int(n))))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// RemovePort removes the port sub-component.
func (u *Url) RemovePort() error {
	if err := u.spliceSingle(CompPort, nil); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.hasPort = false
	u.t.portNumber = 0
	return nil
}

// --- authority ----------------------------------------------------------

// SetEncodedAuthority replaces the entire authority (user, password,
// host, port) from a single encoded "[userinfo@]host[:port]" string.
func (u *Url) SetEncodedAuthority(s string) error {
	var p parts
	p.hasAuthority = true
	if err := parseAuthorityInto(&p, string(s)); err != nil {
		return errtrace.Wrap(err)
	}

	var sb []byte
	write := func(s string) { sb = append(sb, s...) }

	write("//")
	if p.hasUser {
		write(p.user)
	}
	userEnd := len(sb)

	switch {
	case p.hasPassword:
		write(":")
		write(p.password)
		write("@")
	case p.hasUser:
		write("@")
	}
	passEnd := len(sb)

	write(p.host)
	hostEnd := len(sb)

	if p.hasPort {
		write(":")
		write(p.port)
	}

	if err := u.spliceRange(CompUser, CompPort, sb); err != nil {
		return errtrace.Wrap(err)
	}
	base := u.t.start(CompUser)
	u.t.o[CompUser+1] = base + userEnd     // end of user == start of password
	u.t.o[CompPassword+1] = base + passEnd // end of password == start of host
	u.t.o[CompHost+1] = base + hostEnd     // end of host == start of port
	u.t.hostKind = p.hostKind
	u.t.hasPort = false
	u.t.portNumber = 0
	if p.hasPort {
		if n, err := parsePortNumber(p.port); err == nil {
			u.t.portNumber = n
			u.t.hasPort = true
		}
	}
	return nil
}

// RemoveAuthority removes the authority entirely, including its "//".
func (u *Url) RemoveAuthority() error {
	u.t.hostKind = HostNone
	u.t.hasPort = false
	if err := u.spliceSingle(CompPort, nil); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.spliceSingle(CompHost, nil); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.spliceSingle(CompPassword, nil); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.spliceSingle(CompUser, nil))
}

// RemoveOrigin removes scheme and authority together, leaving a valid
// relative-ref (path[?query][#fragment]); grounded in boost.url's
// url::remove_origin, per SPEC_FULL.md §11.
func (u *Url) RemoveOrigin() error {
	if err := u.RemoveAuthority(); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.fixupPathForSchemeChange(false); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.spliceSingle(CompScheme, nil))
}

// --- path -----------------------------------------------------------------

// SetEncodedPath sets the path from an already-encoded string, validating
// it against the context-sensitive path production (I8).
func (u *Url) SetEncodedPath(s string) error {
	str := string(s)
	p := parts{hasAuthority: u.t.hasAuthority(), hasScheme: u.HasScheme()}
	if err := validatePathKind(&p, str); err != nil {
		return errtrace.Wrap(err)
	}
	if err := u.spliceSingle(CompPath, []byte(str)); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.nseg = countSegments(str)
	return nil
}

// SetPath percent-encodes and sets the path from plain text.
func (u *Url) SetPath(s string) error {
	return errtrace.Wrap(u.SetEncodedPath(string(encode(s, setPath))))
}

// --- query -----------------------------------------------------------------

// SetEncodedQuery sets the query from an already-encoded string (without
// a leading '?').
func (u *Url) SetEncodedQuery(s string) error {
	if err := validatePct(s, setQuery); err != nil {
		return errtrace.Wrap(wrapf(ErrInvalidQuery, "%v", err))
	}
	str := string(s)
	if str == "" {
		return errtrace.Wrap(u.RemoveQuery())
	}
	if err := u.spliceSingle(CompQuery, append([]byte("?"), str...)); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.nparam = countParams(str)
	return nil
}

// SetQuery percent-encodes and sets the query from plain text, keeping
// '&' and '=' literal (they are valid pchar-adjacent query characters
// per RFC 3986, unlike in Values.Encode, which escapes them inside keys
// and values to keep k=v&k2=v2 pairs unambiguous).
func (u *Url) SetQuery(s string) error {
	return errtrace.Wrap(u.SetEncodedQuery(string(encode(s, setQuery))))
}

// SetQueryPart accepts the delimiter-prefixed form ("?a=1"), matching
// boost.url's url::set_query_part (SPEC_FULL.md §11).
func (u *Url) SetQueryPart(s string) error {
	str := string(s)
	if len(str) > 0 && str[0] == '?' {
		str = str[1:]
	}
	return errtrace.Wrap(u.SetEncodedQuery(str))
}

// RemoveQuery removes the query component entirely.
func (u *Url) RemoveQuery() error {
	if err := u.spliceSingle(CompQuery, nil); err != nil {
		return errtrace.Wrap(err)
	}
	u.t.nparam = 0
	return nil
}

// --- fragment ---------------------------------------------------------

// SetEncodedFragment sets the fragment from an already-encoded string
// (without a leading '#').
func (u *Url) SetEncodedFragment(s string) error {
	if err := validatePct(s, setFragment); err != nil {
		return errtrace.Wrap(wrapf(ErrInvalidFragment, "%v", err))
	}
	str := string(s)
	if str == "" {
		return errtrace.Wrap(u.RemoveFragment())
	}
	return errtrace.Wrap(u.spliceSingle(CompFragment, append([]byte("#"), str...)))
}

// SetFragment percent-encodes and sets the fragment from plain text.
func (u *Url) SetFragment(s string) error {
	return errtrace.Wrap(u.SetEncodedFragment(string(encode(s, setFragment))))
}

// SetFragmentPart accepts the delimiter-prefixed form ("#frag"),
// completing the pair started by SetQueryPart (SPEC_FULL.md §11).
func (u *Url) SetFragmentPart(s string) error {
	str := string(s)
	if len(str) > 0 && str[0] == '#' {
		str = str[1:]
	}
	return errtrace.Wrap(u.SetEncodedFragment(str))
}

// RemoveFragment removes the fragment component entirely.
func (u *Url) RemoveFragment() error {
	return errtrace.Wrap(u.spliceSingle(CompFragment, nil))
}
