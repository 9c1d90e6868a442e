package url

import (
	"sort"

	"github.com/sdarwin/url/internal/util"
)

// Values maps a query-string key to its list of values, mirroring
// net/url.Values and gosip/internal/types.Values, materialized on demand
// by Url.Query(). Keys are case-sensitive per RFC 3986 (unlike gosip's
// header-parameter Values, which lower-cases keys); query keys are opaque
// to this library.
type Values map[string][]string

// Get returns the first value associated with key, or "" if absent.
func (vals Values) Get(key string) string {
	v := vals[key]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Has reports whether key is present at all, even with an empty value list.
func (vals Values) Has(key string) bool {
	_, ok := vals[key]
	return ok
}

// Set replaces any existing values for key with a single value.
func (vals Values) Set(key, value string) Values {
	vals[key] = []string{value}
	return vals
}

// Append adds value to the end of key's value list.
func (vals Values) Append(key, value string) Values {
	vals[key] = append(vals[key], value)
	return vals
}

// Clone returns a deep copy of vals.
func (vals Values) Clone() Values {
	if vals == nil {
		return nil
	}
	out := make(Values, len(vals))
	for k, vs := range vals {
		cp := make([]string, len(vs))
		copy(cp, vs)
		out[k] = cp
	}
	return out
}

// Encode renders vals as a query string in "k=v&k2=v2" form, percent
// encoding keys with the query-key class (which escapes '=' and '&') and
// values with the query-value class (which escapes '&'), keys sorted for
// a deterministic result.
func (vals Values) Encode() string {
	if len(vals) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	first := true
	for _, k := range keys {
		ek := string(encode(k, setQueryKey))
		for _, v := range vals[k] {
			if !first {
				sb.WriteByte('&')
			}
			first = false
			sb.WriteString(ek)
			sb.WriteByte('=')
			sb.WriteString(string(encode(v, setQueryVal)))
		}
	}
	return sb.String()
}
