package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveChainCall(t *testing.T) {
	before := testutil.ToFloat64(chainCalls.WithLabelValues("ownerOf", "error"))
	ObserveChainCall("ownerOf", 10*time.Millisecond, errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(chainCalls.WithLabelValues("ownerOf", "error")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `eventx_http_requests_total{method="GET",route="/ping",status="200"}`)
}
