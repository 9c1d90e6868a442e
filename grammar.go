package url

import "braces.dev/errtrace"

// parts is what a grammar production hands back to a caller in url.go:
// the substrings of each component it matched, plus presence flags (not
// byte offsets; url.go's loadParts derives a Url's index table from them). Unlike the teacher's
// internal/grammar package, which composes abnf.Node trees shared by
// several sip/tel productions, RFC 3986 has exactly one grammar domain in
// this module, so the parser lives beside the buffer/index types it feeds
// instead of behind a separate internal subpackage boundary (see
// DESIGN.md).
type parts struct {
	scheme            string // without trailing ":"
	hasScheme         bool
	hasAuthority      bool
	user              string
	hasUser           bool
	password          string
	hasPassword       bool
	host              string
	hostKind          HostKind
	port              string
	hasPort           bool
	path              string
	query             string
	hasQuery          bool
	fragment          string
	hasFragment       bool
}

// parseURIReference parses the URI-reference production (RFC 3986 §4.1):
// URI / relative-ref. It requires the whole input to be consumed.
func parseURIReference[T byteseq](s T) (parts, error) {
	str := string(s)
	if str == "" {
		return parts{}, errtrace.Wrap(ErrEmptyInput)
	}

	p := parts{}
	rest := str

	if scheme, r, ok := tryScheme(rest); ok {
		p.scheme = scheme
		p.hasScheme = true
		rest = r
	}

	if err := parseHierOrRelativePart(&p, rest0(&rest)); err != nil {
		return parts{}, errtrace.Wrap(err)
	}

	return p, nil
}

// rest0 is a tiny indirection so parseHierOrRelativePart can both read and
// advance the shared cursor without every helper repeating the pattern.
func rest0(rest *string) *string { return rest }

func parseHierOrRelativePart(p *parts, rest *string) error {
	s := *rest

	if len(s) >= 2 && s[0] == '/' && s[1] == '/' {
		authority, path, tail, err := splitAuthorityPath(s[2:])
		if err != nil {
			return errtrace.Wrap(err)
		}
		if err := parseAuthorityInto(p, authority); err != nil {
			return errtrace.Wrap(err)
		}
		p.hasAuthority = true
		if err := validatePathKind(p, path); err != nil {
			return errtrace.Wrap(err)
		}
		p.path = path
		s = tail
	} else {
		path, tail := splitPathOnly(s)
		if err := validatePathKind(p, path); err != nil {
			return errtrace.Wrap(err)
		}
		p.path = path
		s = tail
	}

	if len(s) > 0 && s[0] == '?' {
		q, tail := splitAt(s[1:], "#")
		if err := validatePct(q, setQuery); err != nil {
			return errtrace.Wrap(wrapf(ErrInvalidQuery, "%v", err))
		}
		p.query = q
		p.hasQuery = true
		s = tail
	}

	if len(s) > 0 && s[0] == '#' {
		f := s[1:]
		if err := validatePct(f, setFragment); err != nil {
			return errtrace.Wrap(wrapf(ErrInvalidFragment, "%v", err))
		}
		p.fragment = f
		p.hasFragment = true
		s = ""
	}

	if s != "" {
		return errtrace.Wrap(wrapf(ErrInvalidPath, "trailing input %q", s))
	}
	return nil
}

// tryScheme consumes "ALPHA *( ALPHA / DIGIT / '+' / '-' / '.' ) ':'" from
// the front of s, returning the scheme (without colon), the remainder, and
// whether a scheme was actually present. A scheme is only recognized if a
// bare ':' follows before any '/' character reachable this way, per the
// URI-reference grammar's ambiguity with relative-ref paths.
func tryScheme(s string) (string, string, bool) {
	if s == "" || !isAlpha(s[0]) {
		return "", s, false
	}
	i := 1
	for i < len(s) {
		c := s[i]
		if isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.' {
			i++
			continue
		}
		break
	}
	if i >= len(s) || s[i] != ':' {
		return "", s, false
	}
	return s[:i], s[i+1:], true
}

// splitAuthorityPath splits the input just past "//" into its authority
// and path portions; the authority ends at the first '/', '?', '#', or end
// of string.
func splitAuthorityPath(s string) (authority, path, tail string, err error) {
	i := 0
	for i < len(s) && s[i] != '/' && s[i] != '?' && s[i] != '#' {
		i++
	}
	authority = s[:i]
	pathAndTail := s[i:]
	j := 0
	for j < len(pathAndTail) && pathAndTail[j] != '?' && pathAndTail[j] != '#' {
		j++
	}
	return authority, pathAndTail[:j], pathAndTail[j:], nil
}

func splitPathOnly(s string) (path, tail string) {
	i := 0
	for i < len(s) && s[i] != '?' && s[i] != '#' {
		i++
	}
	return s[:i], s[i:]
}

func splitAt(s, cutset string) (before, after string) {
	for i := 0; i < len(s); i++ {
		for _, c := range cutset {
			if s[i] == byte(c) {
				return s[:i], s[i:]
			}
		}
	}
	return s, ""
}

// parseAuthorityInto parses "[ userinfo '@' ] host [ ':' port ]" and
// stores the results in p.
func parseAuthorityInto(p *parts, s string) error {
	hostport := s
	if at := lastUnbracketedAt(s); at >= 0 {
		userinfo := s[:at]
		hostport = s[at+1:]
		if err := parseUserinfoInto(p, userinfo); err != nil {
			return errtrace.Wrap(err)
		}
	}

	host, port, hasPort, err := splitHostPort(hostport)
	if err != nil {
		return errtrace.Wrap(err)
	}
	kind, err := parseHost(host)
	if err != nil {
		return errtrace.Wrap(wrapf(ErrInvalidHost, "%v", err))
	}
	p.host = host
	p.hostKind = kind
	if hasPort {
		for _, c := range []byte(port) {
			if !isDigit(c) {
				return errtrace.Wrap(wrapf(ErrInvalidPort, "non-digit in port %q", port))
			}
		}
		p.port = port
		p.hasPort = true
	}
	return nil
}

// lastUnbracketedAt finds the last '@' not inside a "[...]" IP-literal.
func lastUnbracketedAt(s string) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '@':
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}

func splitHostPort(s string) (host, port string, hasPort bool, err error) {
	if len(s) > 0 && s[0] == '[' {
		i := 0
		for i < len(s) && s[i] != ']' {
			i++
		}
		if i >= len(s) {
			return "", "", false, errtrace.Wrap(wrapf(ErrInvalidHost, "unterminated IP-literal"))
		}
		host = s[:i+1]
		rest := s[i+1:]
		if rest == "" {
			return host, "", false, nil
		}
		if rest[0] != ':' {
			return "", "", false, errtrace.Wrap(wrapf(ErrInvalidHost, "unexpected %q after IP-literal", rest))
		}
		return host, rest[1:], true, nil
	}
	if i := indexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:], true, nil
	}
	return s, "", false, nil
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func parseUserinfoInto(p *parts, s string) error {
	if i := indexByte(s, ':'); i >= 0 {
		user, pass := s[:i], s[i+1:]
		if err := validatePct(user, setUser); err != nil {
			return errtrace.Wrap(wrapf(ErrInvalidUserinfo, "%v", err))
		}
		if err := validatePct(pass, setPassword); err != nil {
			return errtrace.Wrap(wrapf(ErrInvalidUserinfo, "%v", err))
		}
		p.user = user
		p.hasUser = true
		p.password = pass
		p.hasPassword = true
		return nil
	}
	if err := validatePct(s, setUser); err != nil {
		return errtrace.Wrap(wrapf(ErrInvalidUserinfo, "%v", err))
	}
	p.user = s
	p.hasUser = true
	return nil
}

// validatePathKind enforces the context-sensitive path constraint (I8).
func validatePathKind(p *parts, path string) error {
	if err := validatePct(path, setPath); err != nil {
		return errtrace.Wrap(wrapf(ErrInvalidPath, "%v", err))
	}
	switch {
	case p.hasAuthority:
		if path != "" && path[0] != '/' {
			return errtrace.Wrap(wrapf(ErrInvalidPath, "path-abempty must be empty or start with '/'"))
		}
	case len(path) >= 2 && path[0] == '/' && path[1] == '/':
		return errtrace.Wrap(wrapf(ErrInvalidPath, "path cannot start with '//' without authority"))
	case p.hasScheme:
		// path-absolute or path-rootless, both fine as-is once pchar-validated.
	default:
		// path-noscheme: first segment must not contain ':'
		seg := path
		if i := indexByte(path, '/'); i >= 0 {
			seg = path[:i]
		}
		if indexByte(seg, ':') >= 0 {
			return errtrace.Wrap(wrapf(ErrInvalidPath, "first segment of a schemeless relative-ref must not contain ':'"))
		}
	}
	return nil
}
