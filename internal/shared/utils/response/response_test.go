package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbort_StopsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reached := false
	engine := gin.New()
	engine.GET("/x",
		func(c *gin.Context) { Abort(c, http.StatusForbidden, "nope", nil) },
		func(c *gin.Context) { reached = true },
	)

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, StatusError, body.Status)
	assert.Equal(t, http.StatusForbidden, body.StatusCode)
	assert.Equal(t, "nope", body.Message)
}

func TestRespondJSON_OmitsEmptyFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)

	RespondJSON(c, StatusSuccess, http.StatusOK, "ok", nil, nil)

	assert.JSONEq(t, `{"status":"success","status_code":200,"message":"ok"}`, rr.Body.String())
}
