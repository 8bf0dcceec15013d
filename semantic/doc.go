// Package semantic assembles the core message components (headers,
// body, cookies) into request and response structures. It deals in
// message meaning only; framing and transport belong to a codec layer
// consuming [header.Headers.Fields] and the body's length/reader.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110
package semantic
