package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"capotokeys/internal/adapters/filesystem"
	"capotokeys/internal/adapters/pdf"
	"capotokeys/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	dir    string
	router *gin.Engine
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	dir := t.TempDir()
	if opts.ListLimit == 0 {
		opts.ListLimit = 300
	}
	opts.Layout = domain.DefaultLayout()

	h := NewHandler(filesystem.NewRepository(dir), pdf.NewRenderer(), opts, zap.NewNop())
	return &testServer{
		dir:    dir,
		router: NewRouter(h, 4096, zap.NewNop()),
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) seed(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(s.dir, n), []byte(n), 0644))
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestGenerate_Form(t *testing.T) {
	s := newTestServer(t, Options{})
	w := s.postForm("/generate", url.Values{
		"text":  {"Em G D C"},
		"title": {"My Song"},
		"capo":  {"2"},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Gbm A E D", body["result"])
	assert.Equal(t, "my-song-capo2", body["stem"])
	assert.Equal(t, "my-song-capo2.txt", body["txt_name"])
	assert.Equal(t, "my-song-capo2.pdf", body["pdf_name"])
	assert.NotContains(t, body, "notice")

	assert.FileExists(t, filepath.Join(s.dir, "my-song-capo2.txt"))
	assert.FileExists(t, filepath.Join(s.dir, "my-song-capo2.pdf"))
}

func TestGenerate_JSONWithConflict(t *testing.T) {
	s := newTestServer(t, Options{Conflict: domain.ConflictSuffix})
	s.seed(t, "chord-sheet-capo1.pdf")

	w := s.postJSON("/generate", `{"text":"D/F#","capo":1}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Eb/G", body["result"])
	assert.Equal(t, "chord-sheet-capo1-2", body["stem"])
	assert.Equal(t, "Existing file detected. Saved as chord-sheet-capo1-2.*", body["notice"])
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"capo not a number", url.Values{"text": {"Am"}, "capo": {"x"}}, msgBadCapo},
		{"capo missing", url.Values{"text": {"Am"}}, msgBadCapo},
		{"capo out of range", url.Values{"text": {"Am"}, "capo": {"12"}}, msgBadCapo},
		{"blank text", url.Values{"text": {"  "}, "capo": {"3"}}, msgNoText},
	}

	s := newTestServer(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.postForm("/generate", tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decode(t, w)["error"])
		})
	}
}

func TestGenerate_TextTooLong(t *testing.T) {
	s := newTestServer(t, Options{MaxTextLength: 10})
	w := s.postForm("/generate", url.Values{"text": {strings.Repeat("A ", 20)}, "capo": {"1"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "exceeds 10")
}

func TestGenerate_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, Options{})
	w := s.postForm("/generate", url.Values{"text": {strings.Repeat("C ", 5000)}, "capo": {"1"}})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, msgTooLarge, decode(t, w)["error"])
}

func TestListOutputs(t *testing.T) {
	s := newTestServer(t, Options{})
	s.seed(t, "a-capo1.txt", "a-capo1.pdf", "notes.md")

	w := s.do(httptest.NewRequest(http.MethodGet, "/outputs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	groups := body["groups"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, "a-capo1", body["selected_key"])

	group := groups[0].(map[string]any)
	assert.Equal(t, "A (Capo 1)", group["label"])
	files := group["files"].([]any)
	require.Len(t, files, 2)
	assert.Equal(t, "a-capo1.pdf", files[0].(map[string]any)["name"])
}

func TestListOutputs_Empty(t *testing.T) {
	s := newTestServer(t, Options{})
	w := s.do(httptest.NewRequest(http.MethodGet, "/outputs?group=missing", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Empty(t, body["groups"])
	assert.Nil(t, body["selected"])
}

func TestDeleteGroup(t *testing.T) {
	s := newTestServer(t, Options{})
	s.seed(t, "a-capo1.txt", "a-capo1.pdf", "a-capo1-2.txt")

	w := s.postForm("/delete-group", url.Values{"group_key": {"a-capo1"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Deleted 2 files from group.", decode(t, w)["message"])
	assert.FileExists(t, filepath.Join(s.dir, "a-capo1-2.txt"))

	w = s.postJSON("/delete-group", `{"group_key":"a-capo1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No files found for that group.", decode(t, w)["message"])

	w = s.postForm("/delete-group", url.Values{"group_key": {" "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewAndDownload(t *testing.T) {
	s := newTestServer(t, Options{})
	s.seed(t, "a-capo1.txt")

	w := s.do(httptest.NewRequest(http.MethodGet, "/view/a-capo1.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a-capo1.txt", w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "inline"))
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	w = s.do(httptest.NewRequest(http.MethodGet, "/download/a-capo1.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="a-capo1.txt"`, w.Header().Get("Content-Disposition"))
}

func TestFileRoutes_Errors(t *testing.T) {
	s := newTestServer(t, Options{})

	w := s.do(httptest.NewRequest(http.MethodGet, "/view/missing.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, msgNotFound, decode(t, w)["error"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/download/a%5Cb.txt", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidPath, decode(t, w)["error"])

	w = s.do(httptest.NewRequest(http.MethodPost, "/delete/missing.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteFile(t *testing.T) {
	s := newTestServer(t, Options{})
	s.seed(t, "a-capo1.txt")

	w := s.do(httptest.NewRequest(http.MethodPost, "/delete/a-capo1.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Deleted a-capo1.txt", decode(t, w)["message"])
	assert.NoFileExists(t, filepath.Join(s.dir, "a-capo1.txt"))
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	s := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")

	w := s.do(req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
