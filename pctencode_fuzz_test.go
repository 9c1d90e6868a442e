package url

import "testing"

// FuzzPctEncodeDecodeRoundTrip fuzzes the percent-encoding engine's
// round-trip invariant (SPEC_FULL.md §8.1): Decode(Encode(raw, set), set)
// must reproduce raw for every pctSet, and Decode must never panic on
// attacker-controlled input.
func FuzzPctEncodeDecodeRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"a",
		"a b",
		"a+b",
		"a%20b",
		"a=b&c=d",
		"%",
		"%2",
		"%zz",
		"user:pass",
		"h%C3%A9llo",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	sets := []pctSet{setUser, setPassword, setHost, setPath, setQuery, setQueryKey, setQueryVal, setFragment}

	f.Fuzz(func(t *testing.T, raw string) {
		for _, set := range sets {
			enc := encode(raw, set)
			got, err := decode(enc, set)
			if err != nil {
				t.Fatalf("decode(encode(%q, %s)) failed: %v", raw, set.name, err)
			}
			if string(got) != raw {
				t.Fatalf("round trip mismatch for %s: raw %q, got %q", set.name, raw, got)
			}
		}
	})
}

// FuzzValidatePct ensures validatePct never panics, regardless of pctSet or
// input, since it is the first thing every parse-time setter runs against
// untrusted bytes.
func FuzzValidatePct(f *testing.F) {
	seeds := []string{"", "%", "%1", "%1g", "%%", "a%2Fb", string([]byte{0, 1, 2, 255})}
	for _, seed := range seeds {
		f.Add(seed)
	}

	sets := []pctSet{setUser, setPassword, setHost, setPath, setQuery, setQueryKey, setQueryVal, setFragment}

	f.Fuzz(func(t *testing.T, raw string) {
		for _, set := range sets {
			_ = validatePct(raw, set)
		}
	})
}
