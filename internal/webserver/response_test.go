package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestFailEnvelopeCarriesAllFields(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, Fail(c, http.StatusBadRequest, "something went wrong"))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"statusCode", "statusMessage", "description", "payload", "timestamp"} {
		assert.Contains(t, raw, key)
	}
	// payload is present and null on error envelopes
	assert.Equal(t, "null", string(raw["payload"]))
}

func TestOKEnvelope(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, OK(c, http.StatusCreated, "created", map[string]int{"prodId": 1}))

	var resp ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Created", resp.StatusMessage)
	assert.Equal(t, "created", resp.Description)
	assert.NotEmpty(t, resp.Timestamp)
	assert.NotNil(t, resp.Payload)
}
