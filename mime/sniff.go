package mime

import (
	"bytes"

	"http-kit/util/rule"
)

// SniffLen is the amount of look-ahead content detection may use.
// Callers should feed at most this many bytes to [Sniff].
const SniffLen = 512

type signature struct {
	prefix []byte
	mime   Mime
}

// Magic-number signatures, checked in order.
// Reference: https://mimesniff.spec.whatwg.org/#matching-a-mime-type-pattern
var signatures = []signature{
	{prefix: []byte("\x89PNG\r\n\x1a\n"), mime: PNG},
	{prefix: []byte("\xff\xd8\xff"), mime: JPEG},
	{prefix: []byte("GIF87a"), mime: GIF},
	{prefix: []byte("GIF89a"), mime: GIF},
	{prefix: []byte("%PDF-"), mime: PDF},
	{prefix: []byte("\x00asm"), mime: WASM},
	{prefix: []byte{0x00, 0x00, 0x01, 0x00}, mime: ICO},
}

// Tags that identify HTML when they lead the content
// (after optional whitespace), compared case-insensitively.
var htmlTags = [][]byte{
	[]byte("<!DOCTYPE HTML"),
	[]byte("<HTML"),
	[]byte("<HEAD"),
	[]byte("<BODY"),
	[]byte("<SCRIPT"),
	[]byte("<IFRAME"),
	[]byte("<DIV"),
	[]byte("<P>"),
	[]byte("<!--"),
}

// Sniff guesses the media type of content from its first bytes.
// It reports ok=false when nothing conclusive matched; the returned
// mime is then [ByteStream].
func Sniff(head []byte) (m Mime, ok bool) {
	if len(head) > SniffLen {
		head = head[:SniffLen]
	}
	if len(head) == 0 {
		return ByteStream, false
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(head, sig.prefix) {
			return sig.mime, true
		}
	}

	trimmed := bytes.TrimLeftFunc(head, rule.IsWhitespace)
	for _, tag := range htmlTags {
		if hasPrefixFold(trimmed, tag) {
			return HTML, true
		}
	}
	if bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return XML, true
	}

	if isText(head) {
		return Plain, true
	}

	return ByteStream, false
}

func hasPrefixFold(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	return bytes.EqualFold(b[:len(prefix)], prefix)
}

// isText reports whether head is plausibly textual: no bytes from the
// control range other than whitespace.
func isText(head []byte) bool {
	if bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}) {
		// UTF-8 BOM.
		return true
	}

	for _, c := range head {
		if (0x20 <= c && c < rule.DEL) || c >= 0x80 || c == rule.LF {
			continue
		}
		if rule.IsWhitespace(rune(c)) {
			continue
		}
		return false
	}

	return true
}
