package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/staybook/pkg/auth"
)

// Envelope mirrors response.Envelope with Data and Errors left raw so
// tests can decode them into concrete types.
type Envelope struct {
	Status   int               `json:"status"`
	Message  string            `json:"message"`
	Data     json.RawMessage   `json:"data"`
	Errors   map[string]string `json:"errors"`
	Redirect string            `json:"redirect"`
}

// Request builds a request. A non-nil body that is not an io.Reader is
// encoded as JSON.
func Request(t testing.TB, method, target string, body any) *http.Request {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		if _, ok := body.(io.Reader); !ok {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	return req
}

// WithToken attaches a session cookie to req.
func WithToken(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	return req
}

// Serve runs req through h.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode checks the status code, decodes the envelope and, when data is
// non-nil, unmarshals the envelope's data into it.
func Decode(t testing.TB, rec *httptest.ResponseRecorder, status int, data any) Envelope {
	t.Helper()

	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body is not JSON: %s", rec.Body.String())
	assert.Equal(t, status, env.Status)

	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), "data: %s", string(env.Data))
	}
	return env
}

// AssertJSON compares two JSON documents ignoring key order and spacing.
func AssertJSON(t testing.TB, expected string, actual []byte) {
	t.Helper()

	var exp, act any
	require.NoError(t, json.Unmarshal([]byte(expected), &exp), "expected is not valid JSON")
	if !assert.NoError(t, json.Unmarshal(actual, &act), "actual is not valid JSON: %s", string(actual)) {
		return
	}
	assert.Equal(t, exp, act)
}
