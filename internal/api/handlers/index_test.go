package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	rec := httptest.NewRecorder()

	Index(testBaseURL).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body indexRepresentation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, testBaseURL+"/api/events", body.Links["events"].Href)
}
