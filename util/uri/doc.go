// Package uri implements parsing, validation and formatting of URIs
// per RFC 3986, scoped to what HTTP request targets and cookie domain
// attributes need.
package uri
