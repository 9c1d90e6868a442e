package url

import (
	"iter"

	"github.com/sdarwin/url/internal/util"
)

// ErrStaleIterator is the panic value raised when a Url is mutated while
// one of its Segments/Params iterators is still being consumed.
var ErrStaleIterator = Error("url: iterator used after underlying Url was mutated")

// Segments returns a lazy forward iterator over the URL's encoded path
// segments (SPEC_FULL.md §4.6), expressed with a Go 1.23 range-over-func
// iterator the same way gosip/internal/util.IterFirst consumes iter.Seq.
func (u *Url) Segments() iter.Seq[[]byte] {
	gen := u.gen
	return func(yield func([]byte) bool) {
		path := u.t.region(u.buf.bytes(), CompPath)
		if len(path) == 0 {
			return
		}
		i := 0
		if len(path) > 0 && path[0] == '/' {
			i = 1
		}
		for i <= len(path) {
			if u.gen != gen {
				panic(ErrStaleIterator)
			}
			j := i
			for j < len(path) && path[j] != '/' {
				j++
			}
			if !yield(path[i:j]) {
				return
			}
			if j >= len(path) {
				return
			}
			i = j + 1
		}
	}
}

// Params returns a lazy forward iterator over the URL's encoded query
// key/value pairs.
func (u *Url) Params() iter.Seq2[[]byte, []byte] {
	gen := u.gen
	return func(yield func([]byte, []byte) bool) {
		q := u.t.region(u.buf.bytes(), CompQuery)
		if len(q) > 0 && q[0] == '?' {
			q = q[1:]
		}
		i := 0
		for i < len(q) {
			if u.gen != gen {
				panic(ErrStaleIterator)
			}
			j := i
			for j < len(q) && q[j] != '&' && q[j] != '=' {
				j++
			}
			key := q[i:j]
			var val []byte
			if j < len(q) && q[j] == '=' {
				k := j + 1
				for k < len(q) && q[k] != '&' {
					k++
				}
				val = q[j+1 : k]
				j = k
			}
			if !yield(key, val) {
				return
			}
			if j >= len(q) {
				return
			}
			i = j + 1
		}
	}
}

// Segment returns the i-th path segment, counting from the end when i is
// negative (Python-slice style), per SPEC_FULL.md §11.
func (u *Url) Segment(i int) ([]byte, bool) {
	n := u.SegmentCount()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, false
	}
	if i == 0 {
		return util.IterFirst(u.Segments())
	}
	j := 0
	for seg := range u.Segments() {
		if j == i {
			return seg, true
		}
		j++
	}
	return nil, false
}

// FirstParam returns the first query key/value pair, if any.
func (u *Url) FirstParam() (key, value []byte, ok bool) {
	return util.IterFirst2(u.Params())
}

// SegmentCount returns the number of path segments, per I9.
func (u *Url) SegmentCount() int { return u.t.nseg }

// ParamCount returns the number of query key[=value] pairs, per I10.
func (u *Url) ParamCount() int { return u.t.nparam }

func countSegments(path string) int {
	if path == "" {
		return 0
	}
	n := 1
	start := 0
	if path[0] == '/' {
		start = 1
	}
	for i := start; i < len(path); i++ {
		if path[i] == '/' {
			n++
		}
	}
	return n
}

func countParams(query string) int {
	q := query
	if len(q) > 0 && q[0] == '?' {
		q = q[1:]
	}
	if q == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(q); i++ {
		if q[i] == '&' {
			n++
		}
	}
	return n
}
