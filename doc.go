// Package url implements a mutable RFC 3986 URI-reference container: a
// single contiguous, null-terminated byte buffer holding a
// percent-encoded URL, indexed by component (scheme, userinfo, host,
// port, path, query, fragment), with setters that splice individual
// components in place while preserving the buffer's overall syntactic
// validity.
//
// Url is the mutable container; View is the read-only contract shared by
// Url and the immutable snapshots returned by Url.View. Segments and
// Params provide lazy iteration over path segments and query pairs.
package url
