package metadata

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const svg = `<svg xmlns="http://www.w3.org/2000/svg"><text>Seat 4</text></svg>`

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		uri     string
		kind    Kind
		content string
	}{
		{
			name:    "base64 json with inline image_data svg",
			uri:     "data:application/json;base64," + b64(`{"name":"Ticket","image_data":"`+`<svg><rect/></svg>`+`"}`),
			kind:    KindInlineSVG,
			content: `<svg><rect/></svg>`,
		},
		{
			name:    "base64 json with base64 svg data uri",
			uri:     "data:application/json;base64," + b64(`{"image":"data:image/svg+xml;base64,`+b64(svg)+`"}`),
			kind:    KindInlineSVG,
			content: svg,
		},
		{
			name:    "percent encoded json with percent encoded svg",
			uri:     "data:application/json," + url.PathEscape(`{"image":"data:image/svg+xml,`+url.PathEscape(svg)+`"}`),
			kind:    KindInlineSVG,
			content: svg,
		},
		{
			name:    "json with raster image",
			uri:     "data:application/json;base64," + b64(`{"image":"data:image/png;base64,iVBORw0KGgo="}`),
			kind:    KindImage,
			content: "data:image/png;base64,iVBORw0KGgo=",
		},
		{
			name:    "json with external image",
			uri:     "data:application/json;base64," + b64(`{"image":"ipfs://bafy/1.png"}`),
			kind:    KindLink,
			content: "ipfs://bafy/1.png",
		},
		{
			name:    "empty image falls back to image_data",
			uri:     "data:application/json;base64," + b64(`{"image":"","image_data":"  <svg/></svg>"}`),
			kind:    KindInlineSVG,
			content: "  <svg/></svg>",
		},
		{
			name: "json without image redirects",
			uri:  "data:application/json;base64," + b64(`{"name":"Ticket"}`),
			kind: KindRedirect,
		},
		{
			name:    "malformed json with embedded svg data uri",
			uri:     "data:application/json," + url.PathEscape(`{"image":"data:image/svg+xml;utf8,<svg><g/></svg>"`),
			kind:    KindInlineSVG,
			content: "data:image/svg+xml;utf8,<svg><g/></svg>",
		},
		{
			name:    "malformed json with bare svg",
			uri:     "data:application/json;base64," + b64(`{"image_data": <svg><circle/></svg> }`),
			kind:    KindInlineSVG,
			content: "<svg><circle/></svg>",
		},
		{
			name: "malformed json without svg",
			uri:  "data:application/json,{broken",
			kind: KindRedirect,
		},
		{
			name: "invalid base64",
			uri:  "data:application/json;base64,@@@@",
			kind: KindRedirect,
		},
		{
			name:    "direct image data uri",
			uri:     "data:image/gif;base64,R0lGOD",
			kind:    KindImage,
			content: "data:image/gif;base64,R0lGOD",
		},
		{
			name:    "raw svg",
			uri:     "  " + svg,
			kind:    KindInlineSVG,
			content: "  " + svg,
		},
		{
			name: "https uri",
			uri:  "https://meta.example.org/1.json",
			kind: KindRedirect,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Resolve(tc.uri)
			assert.Equal(t, tc.kind, r.Kind)
			assert.Equal(t, tc.content, r.Content)
			assert.Equal(t, tc.uri, r.URI)
		})
	}
}

func TestRenderHTML(t *testing.T) {
	page := string(RenderHTML(Rendering{Kind: KindInlineSVG, Content: svg}))
	assert.Contains(t, page, svg)

	page = string(RenderHTML(Rendering{Kind: KindImage, Content: "data:image/png;base64,AAAA"}))
	assert.Contains(t, page, `<img alt="NFT" src="data:image/png;base64,AAAA"/>`)

	page = string(RenderHTML(Rendering{Kind: KindLink, Content: "https://img.example/1.png"}))
	assert.Contains(t, page, `href="https://img.example/1.png"`)
	assert.Contains(t, page, "Open image")

	page = string(RenderHTML(Rendering{Kind: KindLink, Content: "javascript:alert(1)"}))
	assert.NotContains(t, page, "javascript:")
}

func TestRedirectTarget(t *testing.T) {
	target, ok := RedirectTarget("https://meta.example.org/1.json")
	assert.True(t, ok)
	assert.Equal(t, "https://meta.example.org/1.json", target)

	_, ok = RedirectTarget("javascript:alert(1)")
	assert.False(t, ok)
}

type stubReader struct {
	uri string
	err error
}

func (s stubReader) TokenURI(context.Context, uint64) (string, error) {
	return s.uri, s.err
}

func serve(reader URIReader, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupMetadataRoutes(r.Group("/api/v1"), NewController(NewService(reader)))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestController(t *testing.T) {
	inline := "data:application/json;base64," + b64(`{"image_data":"`+`<svg><rect/></svg>`+`"}`)

	rr := serve(stubReader{uri: inline}, "/api/v1/tickets/3/nft")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<svg><rect/></svg>")
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))

	rr = serve(stubReader{uri: inline}, "/api/v1/tickets/3/nft?format=json")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"kind":"inline_svg"`)

	rr = serve(stubReader{uri: "https://meta.example.org/3.json"}, "/api/v1/tickets/3/nft")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://meta.example.org/3.json", rr.Header().Get("Location"))

	rr = serve(stubReader{err: errors.New("tokenURI: execution reverted")}, "/api/v1/tickets/3/nft")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to open NFT image.")

	rr = serve(stubReader{}, "/api/v1/tickets/abc/nft")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
