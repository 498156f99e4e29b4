package adapters

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mocks ---

// mockGenerator は generator.RoastGenerator のテスト用モックなのだ。
type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	lastReq domain.RoastRequest

	text string
	err  error
}

func (m *mockGenerator) GenerateRoast(ctx context.Context, req domain.RoastRequest) (*domain.RoastResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.RoastResult{Text: m.text, Model: "mock"}, nil
}

// mockAIClient はモデル境界で差し替えるスタブなのだ。送られたプロンプトを覚えておくのだ。
type mockAIClient struct {
	mu         sync.Mutex
	calls      int
	lastPrompt string
	lastMIME   string

	text string
	err  error
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, p := range parts {
		if p.InlineData != nil {
			m.lastMIME = p.InlineData.MIMEType
		}
		if p.Text != "" {
			m.lastPrompt = p.Text
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: m.text}}},
			}},
		},
	}, nil
}

// --- Helpers ---

// PNGの最小構成バイナリ（シグネチャ含む）
var validPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

// newRoastRequest はマルチパートの POST /api/roast を組み立てるのだ。
// image が nil なら image フィールドを付けないのだ。
func newRoastRequest(t *testing.T, image []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "upload.png")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("failed to write image: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/roast", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
