package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"evalmodels/pkg/types"
)

func postValidate(t *testing.T, ct, body string) (int, types.ValidateResponse) {
	t.Helper()
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)
	var resp types.ValidateResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json: %v", err)
		}
	}
	return w.Code, resp
}

func TestValidate_ValidDocument(t *testing.T) {
	b, _ := json.Marshal(types.ModelsFile{Models: []types.ModelEntry{testEntry("m1")}})
	code, resp := postValidate(t, "application/json", string(b))
	if code != http.StatusOK || !resp.Valid || len(resp.Errors) != 0 {
		t.Fatalf("code=%d resp=%+v", code, resp)
	}
}

func TestValidate_ReportsErrorsAndWarnings(t *testing.T) {
	bad := testEntry("m1")
	bad.BatchSize = 0
	bad.TokenizerKwargs.PaddingSide = types.SideRight
	b, _ := json.Marshal(types.ModelsFile{Models: []types.ModelEntry{bad}})
	code, resp := postValidate(t, "application/json; charset=utf-8", string(b))
	if code != http.StatusOK || resp.Valid {
		t.Fatalf("code=%d resp=%+v", code, resp)
	}
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0], "models[0] (m1).batch_size") {
		t.Fatalf("errors=%v", resp.Errors)
	}
	if len(resp.Warnings) != 1 || !strings.HasPrefix(resp.Warnings[0], "models[0].tokenizer_kwargs.padding_side") {
		t.Fatalf("warnings=%v", resp.Warnings)
	}
}

func TestValidate_UnknownKeyIsFinding(t *testing.T) {
	code, resp := postValidate(t, "application/json", `{"models":[],"extra":1}`)
	if code != http.StatusOK || resp.Valid || len(resp.Errors) != 1 {
		t.Fatalf("code=%d resp=%+v", code, resp)
	}
}

func TestValidate_YAMLBody(t *testing.T) {
	doc := "models:\n  - {type: HuggingFace, abbr: y, path: p, tokenizer_path: p, max_out_len: 1, max_seq_len: 2, batch_size: 1, meta_template: {round: [{role: HUMAN, begin: a, end: b}]}, run_cfg: {num_gpus: 0, num_procs: 1}}\n"
	code, resp := postValidate(t, "application/yaml", doc)
	if code != http.StatusOK || !resp.Valid {
		t.Fatalf("code=%d resp=%+v", code, resp)
	}
}

func TestValidate_UnparseableBody(t *testing.T) {
	code, resp := postValidate(t, "application/toml", "models = [[[")
	if code != http.StatusOK || resp.Valid || len(resp.Errors) != 1 {
		t.Fatalf("code=%d resp=%+v", code, resp)
	}
}

func TestValidate_TrailingGarbage(t *testing.T) {
	code, resp := postValidate(t, "application/json", `{"models":[]} garbage`)
	if code != http.StatusOK || resp.Valid || len(resp.Errors) == 0 {
		t.Fatalf("code=%d resp=%+v", code, resp)
	}
}

func TestValidate_UnsupportedMediaType(t *testing.T) {
	code, _ := postValidate(t, "text/plain", "x")
	if code != http.StatusUnsupportedMediaType {
		t.Fatalf("code=%d", code)
	}
}

func TestRequestLogging_Zerolog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()

	r := NewMux(&mockService{models: []types.ModelEntry{testEntry("m1")}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models/m1?log=info", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	out := buf.String()
	if !strings.Contains(out, `"path":"/models/m1"`) || !strings.Contains(out, `"status":200`) || !strings.Contains(out, `"request_id"`) {
		t.Fatalf("unexpected log: %s", out)
	}
}

func TestRequestLogging_ErrorLevelSkipsSuccess(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()

	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz?log=error", nil))
	if buf.Len() != 0 {
		t.Fatalf("expected no log for success at error level: %s", buf.String())
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/models/nope?log=error", nil))
	if !strings.Contains(buf.String(), `"status":404`) {
		t.Fatalf("expected 404 logged: %s", buf.String())
	}
}

func TestCORS_OptIn(t *testing.T) {
	SetCORSOptions(true, []string{"http://ui.local"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)

	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/models", nil)
	req.Header.Set("Origin", "http://ui.local")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://ui.local" {
		t.Fatalf("allow-origin=%q status=%d", got, w.Code)
	}
}
