package metadata

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"
)

const pageStyle = "margin:0"

var viewer = template.Must(template.New("nft").Parse(`<!doctype html><html><head><meta charset="utf-8"/><title>NFT</title></head><body style="{{.Style}}">` +
	`{{if .SVG}}{{.SVG}}{{else if .Image}}<img alt="NFT" src="{{.Image}}"/>{{else if .Link}}<a href="{{.Link}}" target="_blank" rel="noopener noreferrer">Open image</a>{{else}}<p>{{.Message}}</p>{{end}}` +
	`</body></html>`))

type page struct {
	Style   template.CSS
	SVG     template.HTML
	Image   template.URL
	Link    string
	Message string
}

// RenderHTML renders the viewer page for r. Redirect renderings produce a
// link page; callers redirect instead when RedirectTarget allows it.
func RenderHTML(r Rendering) []byte {
	p := page{Style: pageStyle}
	switch r.Kind {
	case KindInlineSVG:
		p.SVG = template.HTML(r.Content)
	case KindImage:
		p.Image = template.URL(r.Content)
	case KindLink:
		p.Link = r.Content
	default:
		p.Link = r.URI
	}
	return execute(p)
}

// RenderError is the page shown when the token URI cannot be read.
func RenderError() []byte {
	return execute(page{
		Style:   "margin:20px;font-family:ui-sans-serif,system-ui,Segoe UI,Roboto,Arial",
		Message: "Failed to open NFT image.",
	})
}

func execute(p page) []byte {
	var buf bytes.Buffer
	if err := viewer.Execute(&buf, p); err != nil {
		return []byte("<p>Failed to open NFT image.</p>")
	}
	return buf.Bytes()
}

var redirectSchemes = map[string]bool{"http": true, "https": true, "ipfs": true, "ar": true}

// RedirectTarget reports whether uri is safe to send as a Location header.
func RedirectTarget(uri string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil || !redirectSchemes[strings.ToLower(u.Scheme)] {
		return "", false
	}
	return u.String(), true
}
