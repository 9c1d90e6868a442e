package url_test

import (
	"testing"

	"github.com/sdarwin/url"
)

// FuzzParse fuzzes the top-level Parse entry point, which handles the full
// URI-reference production (absolute or relative). Parse must never panic
// on attacker-controlled input; a rejected input is a valid outcome.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"http://example.com",
		"http://u:p@h:8080/a/b?x=1&y=2#top",
		"a/b/c",
		"/a/b/c",
		"urn:example:1234",
		"http://[2001:db8::1]:8080/",
		"http://127.0.0.1/",
		"//evil",
		"http://h/p%2fq",
		"http://h/?a=1&a=2&b=3",
		"ht!tp://",
		"http://h:port/",
		"http://[::1",
		"%zz",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		u, err := url.Parse(input)
		if err != nil {
			return
		}
		// A successfully parsed URL must always re-render, never panic.
		_ = u.String()
	})
}
