package adapters

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

func newCORSRouter(gen *mockGenerator) http.Handler {
	return NewRouter(RouterConfig{
		RoastHandler:  NewRoastHandler(gen, Options{StrictValidation: true}),
		CORSEnabled:   true,
		AllowedOrigin: testOrigin,
	})
}

func TestCORS_RejectsForeignOrigin(t *testing.T) {
	gen := &mockGenerator{text: "never"}
	r := newCORSRouter(gen)

	req := newRoastRequest(t, validPNG, map[string]string{"language": "English"})
	req.Header.Set("Origin", "http://evil.example")
	rec := serve(r, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Origin not allowed"}`, rec.Body.String())
	assert.Zero(t, gen.calls, "拒否したオリジンではモデルを呼ばないのだ")

	vals, ok := rec.Header()["Access-Control-Allow-Origin"]
	require.True(t, ok, "不一致でもヘッダー自体は付くのだ")
	assert.Equal(t, []string{""}, vals)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	gen := &mockGenerator{text: "Nice try."}
	r := newCORSRouter(gen)

	req := newRoastRequest(t, validPNG, map[string]string{"language": "English"})
	req.Header.Set("Origin", testOrigin)
	rec := serve(r, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	assert.Equal(t, 1, gen.calls)
}

func TestCORS_NoOriginPasses(t *testing.T) {
	gen := &mockGenerator{text: "curl user detected."}
	r := newCORSRouter(gen)

	rec := serve(r, newRoastRequest(t, validPNG, map[string]string{"language": "English"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gen.calls)
}

func TestPreflight(t *testing.T) {
	tests := []struct {
		name        string
		corsEnabled bool
		origin      string
		wantACAO    string
		wantHeaders bool
	}{
		{"許可オリジンからのプリフライトなのだ", true, testOrigin, testOrigin, true},
		{"許可されないオリジンでも204なのだ", true, "http://evil.example", "", true},
		{"Originなしでも204なのだ", true, "", "", true},
		{"CORS無効でも204なのだ", false, testOrigin, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{text: "never"}
			r := NewRouter(RouterConfig{
				RoastHandler:  NewRoastHandler(gen, Options{}),
				CORSEnabled:   tt.corsEnabled,
				AllowedOrigin: testOrigin,
			})

			req := httptest.NewRequest(http.MethodOptions, "/api/roast", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := serve(r, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Zero(t, gen.calls)

			_, present := rec.Header()["Access-Control-Allow-Origin"]
			assert.Equal(t, tt.wantHeaders, present)
			if tt.wantHeaders {
				assert.Equal(t, tt.wantACAO, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
