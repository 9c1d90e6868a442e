package url

import "github.com/sdarwin/url/internal/util"

// Scheme is a known-scheme constant (SPEC_FULL.md §6.4). SchemeUnknown is
// a valid value for a parsed URL's scheme but must never be passed to
// SetSchemeID.
type Scheme int

const (
	SchemeNone Scheme = iota
	SchemeUnknown
	SchemeFTP
	SchemeFile
	SchemeHTTP
	SchemeHTTPS
	SchemeWS
	SchemeWSS
)

var schemeNames = map[Scheme]string{
	SchemeFTP:   "ftp",
	SchemeFile:  "file",
	SchemeHTTP:  "http",
	SchemeHTTPS: "https",
	SchemeWS:    "ws",
	SchemeWSS:   "wss",
}

var namesToScheme = func() map[string]Scheme {
	m := make(map[string]Scheme, len(schemeNames))
	for id, name := range schemeNames {
		m[name] = id
	}
	return m
}()

// String returns the canonical lowercase name of a known scheme, or the
// empty string for SchemeNone/SchemeUnknown.
func (s Scheme) String() string { return schemeNames[s] }

// LookupScheme maps a scheme name (case-insensitive) to its known
// constant: SchemeNone for an empty name, SchemeUnknown if name is
// non-empty but not one of the fixed set, or the matching constant
// otherwise.
func LookupScheme[T byteseq](name T) Scheme {
	if len(name) == 0 {
		return SchemeNone
	}
	id, ok := namesToScheme[util.LCase(string(name))]
	if !ok {
		return SchemeUnknown
	}
	return id
}
