package mime

// Well-known media types.
//
// These are package vars rather than consts because [Mime] carries a
// parameter slice, but they must be treated as immutable.
var (
	// Any is the media range "*/*".
	Any = Mime{basetype: "*", subtype: "*"}

	// ByteStream is the fallback for content of unknown type.
	ByteStream = Mime{basetype: "application", subtype: "octet-stream"}

	Plain = Mime{
		basetype: "text", subtype: "plain",
		params: []Param{{Name: "charset", Value: "utf-8"}},
	}

	HTML = Mime{
		basetype: "text", subtype: "html",
		params: []Param{{Name: "charset", Value: "utf-8"}},
	}

	CSS  = Mime{basetype: "text", subtype: "css"}
	XML  = Mime{basetype: "application", subtype: "xml"}
	JSON = Mime{basetype: "application", subtype: "json"}

	JavaScript = Mime{basetype: "application", subtype: "javascript"}
	WASM       = Mime{basetype: "application", subtype: "wasm"}

	Form      = Mime{basetype: "application", subtype: "x-www-form-urlencoded"}
	Multipart = Mime{basetype: "multipart", subtype: "form-data"}

	SVG  = Mime{basetype: "image", subtype: "svg+xml"}
	PNG  = Mime{basetype: "image", subtype: "png"}
	JPEG = Mime{basetype: "image", subtype: "jpeg"}
	GIF  = Mime{basetype: "image", subtype: "gif"}
	ICO  = Mime{basetype: "image", subtype: "x-icon"}

	PDF = Mime{basetype: "application", subtype: "pdf"}
)
