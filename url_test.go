package url_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sdarwin/url"
)

func TestParseAndString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", url.ErrEmptyInput},
		{"http with host", "http://example.com", nil},
		{"http with path", "http://example.com/a/b", nil},
		{"full", "http://u:p@h:8080/a/b?x=1&y=2#top", nil},
		{"relative path", "a/b/c", nil},
		{"absolute path", "/a/b/c", nil},
		{"urn opaque-ish", "urn:example:1234", nil},
		{"ipv6 host", "http://[2001:db8::1]:8080/", nil},
		{"ipv4 host", "http://127.0.0.1/", nil},
		{"double slash no authority", "//evil", url.ErrInvalidPath},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(c.input)
			if c.wantErr == nil {
				if err != nil {
					t.Fatalf("Parse(%q) error = %v, want nil", c.input, err)
				}
				if got := u.String(); got != c.input {
					t.Errorf("Parse(%q).String() = %q, want round-trip %q", c.input, got, c.input)
				}
				return
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("Parse(%q) error = %v, want %v\ndiff:\n%s", c.input, err, c.wantErr, diff)
			}
		})
	}
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	t.Run("build from empty", func(t *testing.T) {
		t.Parallel()
		u := url.New()
		mustOK(t, u.SetScheme("http"))
		mustOK(t, u.SetHost("example.com"))
		mustOK(t, u.SetPath("/a b"))
		mustOK(t, u.SetQuery("x=1&y=2"))
		mustOK(t, u.SetFragment("top"))
		want := "http://example.com/a%20b?x=1&y=2#top"
		if got := u.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("remove password keeps user", func(t *testing.T) {
		t.Parallel()
		u := mustParse(t, "http://u:p@h:8080/")
		mustOK(t, u.RemovePassword())
		want := "http://u@h:8080/"
		if got := u.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("remove user keeps password", func(t *testing.T) {
		t.Parallel()
		u := mustParse(t, "http://u:p@h/")
		mustOK(t, u.RemoveUser())
		want := "http://:p@h/"
		if got := u.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("remove user drops userinfo entirely", func(t *testing.T) {
		t.Parallel()
		u := mustParse(t, "http://u@h/")
		mustOK(t, u.RemoveUser())
		want := "http://h/"
		if got := u.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("ipv6 host setter", func(t *testing.T) {
		t.Parallel()
		u := mustParse(t, "http://h/")
		mustOK(t, u.SetHostIPv6(mustIPv6(t, "::1")))
		want := "http://[::1]/"
		if got := u.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("encoded path rejects bare double slash without authority", func(t *testing.T) {
		t.Parallel()
		u := url.New()
		err := u.SetEncodedPath("//evil")
		if err == nil {
			t.Fatalf("expected error, got nil")
		}
		if u.String() != "" {
			t.Errorf("container mutated after failed SetEncodedPath: %q", u.String())
		}
	})

	t.Run("leading zero port preserved, numeric parsed", func(t *testing.T) {
		t.Parallel()
		u := mustParse(t, "http://h/")
		mustOK(t, u.SetPort("0080"))
		if got := u.String(); got != "http://h:0080/" {
			t.Errorf("got %q", got)
		}
		n, ok := u.PortNumber()
		if !ok || n != 80 {
			t.Errorf("PortNumber() = (%d, %v), want (80, true)", n, ok)
		}
	})

	t.Run("encoded slash in segment does not split", func(t *testing.T) {
		t.Parallel()
		u := mustParse(t, "http://h/p%2fq")
		var segs []string
		for s := range u.Segments() {
			segs = append(segs, string(s))
		}
		if diff := cmp.Diff(segs, []string{"p%2fq"}); diff != "" {
			t.Errorf("diff: %s", diff)
		}
	})

	t.Run("repeated query key", func(t *testing.T) {
		t.Parallel()
		u := mustParse(t, "http://h/?a=1&a=2&b=3")
		vals := u.Query()
		if got := len(vals["a"]); got != 2 {
			t.Errorf("len(vals[a]) = %d, want 2", got)
		}
	})
}

func TestRoundTripIdempotence(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"http://u:p@h:8080/a/b?x=1#f",
		"sip:admin@example.com;transport=tcp",
		"/a/b/c",
		"a/b/c",
		"urn:example:1234",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			u := mustParse(t, in)
			if got := u.String(); got != in {
				t.Fatalf("round-trip: got %q, want %q", got, in)
			}

			mustOK(t, u.SetEncodedPath(u.Path()))
			if got := u.String(); got != in {
				t.Errorf("idempotent SetEncodedPath: got %q, want %q", got, in)
			}
		})
	}
}

func TestCloneIndependence(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "http://h/a")
	u2 := u.Clone()
	mustOK(t, u2.SetPath("/b"))
	if u.Path() != "/a" {
		t.Errorf("mutating clone affected original: %q", u.Path())
	}
}

func TestCapacityMonotonic(t *testing.T) {
	t.Parallel()

	u := url.New()
	prev := u.CapacityInBytes()
	mustOK(t, u.SetScheme("http"))
	mustOK(t, u.SetHost("example.com"))
	mustOK(t, u.SetPath("/a/b/c/d/e/f/g/h/i/j/k"))
	if got := u.CapacityInBytes(); got < prev {
		t.Errorf("capacity decreased: %d < %d", got, prev)
	}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustParse(t *testing.T, s string) *url.Url {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", s, err)
	}
	return u
}

func mustIPv6(t *testing.T, s string) url.IPv6Addr {
	t.Helper()
	addr, err := url.ParseIPv6(s)
	if err != nil {
		t.Fatalf("ParseIPv6(%q) error = %v", s, err)
	}
	return addr
}
