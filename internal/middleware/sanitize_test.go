package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/devcamper/internal/ctxkeys"
)

func TestSanitizeStripsOperatorKeys(t *testing.T) {
	next := &capture{t: t}
	h := Chain(next, JSONBody(1024), Sanitize)

	req := postJSON(`{"email":{"$gt":""},"password":"x","profile":{"a.b":1,"ok":[{"$where":"1"},{"fine":true}]}}`)
	req.URL.RawQuery = "$where=1&name=devworks&a.b=2"
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, next.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(next.body), &body))
	assert.Equal(t, map[string]any{}, body["email"])
	assert.Equal(t, "x", body["password"])
	assert.Equal(t, map[string]any{"ok": []any{map[string]any{}, map[string]any{"fine": true}}}, body["profile"])

	doc := ctxkeys.Body(next.req.Context()).(map[string]any)
	assert.NotContains(t, doc["email"], "$gt")

	assert.Equal(t, "name=devworks", next.req.URL.RawQuery)
}

func TestSanitizeLeavesCleanRequestsAlone(t *testing.T) {
	next := &capture{t: t}
	h := Chain(next, JSONBody(1024), Sanitize)

	req := postJSON(`{"name":"Devworks"}`)
	req.URL.RawQuery = "select=name&sort=-name"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"name":"Devworks"}`, next.body)
	assert.Equal(t, "select=name&sort=-name", next.req.URL.RawQuery)
}

func TestXSSCleansStrings(t *testing.T) {
	next := &capture{t: t}
	h := Chain(next, JSONBody(1024), XSS())

	req := postJSON(`{"name":"<b>Devworks</b> Bootcamp","description":"Fish & chips","tags":["<i>web</i>"]}`)
	req.URL.RawQuery = "q=" + "%3Cscript%3Ealert(1)%3C%2Fscript%3Ehi"
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, next.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(next.body), &body))
	assert.Equal(t, "Devworks Bootcamp", body["name"])
	assert.Equal(t, "Fish & chips", body["description"])
	assert.Equal(t, []any{"web"}, body["tags"])

	assert.Equal(t, "hi", next.req.URL.Query().Get("q"))
}

func TestParameterPollution(t *testing.T) {
	next := &capture{t: t}
	h := ParameterPollution("select")(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bootcamps?sort=name&sort=-name&select=name&select=description&page=2", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	query := next.req.URL.Query()
	assert.Equal(t, []string{"-name"}, query["sort"])
	assert.Equal(t, []string{"name", "description"}, query["select"])
	assert.Equal(t, []string{"2"}, query["page"])

	polluted := ctxkeys.QueryPolluted(next.req.Context())
	assert.Equal(t, []string{"name", "-name"}, polluted["sort"])
	assert.NotContains(t, polluted, "select")
}

func TestParameterPollutionWithoutDuplicates(t *testing.T) {
	next := &capture{t: t}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bootcamps?page=2", nil)

	ParameterPollution()(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "page=2", next.req.URL.RawQuery)
	assert.Nil(t, ctxkeys.QueryPolluted(next.req.Context()))
}
