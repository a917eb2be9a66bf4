package metadata

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

type Kind string

const (
	KindInlineSVG Kind = "inline_svg"
	KindImage     Kind = "image"
	KindLink      Kind = "link"
	KindRedirect  Kind = "redirect"
)

// Rendering is how a token URI should be shown.
type Rendering struct {
	Kind Kind `json:"kind"`
	// Content is SVG markup, an image src or a link href, depending on Kind.
	Content string `json:"content,omitempty"`
	URI     string `json:"uri"`
}

const (
	jsonPrefix  = "data:application/json"
	imagePrefix = "data:image/"
	svgPrefix   = "data:image/svg+xml"
	svgEndTag   = "</svg>"
)

var base64Header = regexp.MustCompile(`(?i);base64`)

// Resolve classifies uri without fetching anything.
func Resolve(uri string) Rendering {
	if strings.HasPrefix(uri, jsonPrefix) {
		if r, ok := resolveJSON(uri); ok {
			return r
		}
	}
	if strings.HasPrefix(uri, imagePrefix) {
		return Rendering{Kind: KindImage, Content: uri, URI: uri}
	}
	if strings.HasPrefix(strings.TrimSpace(uri), "<svg") {
		return Rendering{Kind: KindInlineSVG, Content: uri, URI: uri}
	}
	return Rendering{Kind: KindRedirect, URI: uri}
}

// resolveJSON handles inline JSON metadata. ok is false when the document
// parsed but carries no image, so the caller's fallback chain applies.
func resolveJSON(uri string) (Rendering, bool) {
	text, decoded := decodeDataURI(uri)
	if !decoded {
		return scanForSVG(uri, "")
	}

	var meta interface{}
	if err := json.Unmarshal([]byte(text), &meta); err != nil {
		return scanForSVG(uri, text)
	}

	fields, isObject := meta.(map[string]interface{})
	if !isObject {
		if meta == nil {
			return scanForSVG(uri, text)
		}
		return Rendering{}, false
	}

	raw := fields["image"]
	if !truthy(raw) {
		raw = fields["image_data"]
	}
	if !truthy(raw) {
		return Rendering{}, false
	}
	image, isString := raw.(string)
	if !isString {
		return scanForSVG(uri, text)
	}
	return classifyImage(uri, image), true
}

func classifyImage(uri, image string) Rendering {
	switch {
	case strings.HasPrefix(image, svgPrefix):
		markup, ok := decodeDataURI(image)
		if !ok {
			_, markup, _ = strings.Cut(image, ",")
		}
		return Rendering{Kind: KindInlineSVG, Content: markup, URI: uri}
	case strings.HasPrefix(image, imagePrefix):
		return Rendering{Kind: KindImage, Content: image, URI: uri}
	case strings.HasPrefix(strings.TrimSpace(image), "<svg"):
		return Rendering{Kind: KindInlineSVG, Content: image, URI: uri}
	default:
		return Rendering{Kind: KindLink, Content: image, URI: uri}
	}
}

// scanForSVG looks for embedded SVG in text that failed to parse, first as
// a data URI then as bare markup. With nothing found it redirects to uri.
func scanForSVG(uri, text string) (Rendering, bool) {
	if start := strings.Index(text, svgPrefix); start != -1 {
		if end := strings.Index(text[start:], svgEndTag); end != -1 {
			return Rendering{Kind: KindInlineSVG, Content: text[start : start+end+len(svgEndTag)], URI: uri}, true
		}
	}
	if start := strings.Index(text, "<svg"); start != -1 {
		if end := strings.Index(text[start:], svgEndTag); end != -1 {
			return Rendering{Kind: KindInlineSVG, Content: text[start : start+end+len(svgEndTag)], URI: uri}, true
		}
	}
	return Rendering{Kind: KindRedirect, URI: uri}, true
}

// decodeDataURI returns the payload after the first comma, base64 or
// percent decoded per the header. Percent-decoding errors keep the raw
// payload; base64 errors report !ok.
func decodeDataURI(uri string) (string, bool) {
	header, payload, _ := strings.Cut(uri, ",")
	if base64Header.MatchString(header) {
		b, err := decodeBase64(payload)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	if s, err := url.PathUnescape(payload); err == nil {
		return s, true
	}
	return payload, true
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}
