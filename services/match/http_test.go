package match

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, State) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var st State
	if rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}

	return rec, st
}

func TestHTTPGameFlow(t *testing.T) {
	svc, _ := newTestService()
	h := HTTPHandler(svc)

	rec, st := doJSON(t, h, http.MethodPost, "/games", `{"player":"b","thinkTimeMs":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	path := "/games/" + st.ID

	rec, got := doJSON(t, h, http.MethodGet, path, "")
	if rec.Code != http.StatusOK || got.Hash != st.Hash {
		t.Fatalf("expected the same game back, got %d %+v", rec.Code, got)
	}

	body := `{"row":2,"col":4,"hash":"` + strconv.FormatUint(st.Hash, 10) + `"}`
	rec, moved := doJSON(t, h, http.MethodPost, path+"/moves", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	if moved.LastBotMove == nil || !moved.CanUndo {
		t.Fatalf("expected a bot reply, got %+v", moved)
	}

	rec, _ = doJSON(t, h, http.MethodPost, path+"/moves", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a stale hash, got %d", rec.Code)
	}

	rec, undone := doJSON(t, h, http.MethodPost, path+"/undo", "")
	if rec.Code != http.StatusOK || undone.Hash != st.Hash {
		t.Fatalf("expected undo to restore the start, got %d %+v", rec.Code, undone)
	}
}

func TestHTTPErrors(t *testing.T) {
	svc, _ := newTestService()
	h := HTTPHandler(svc)

	_, st := doJSON(t, h, http.MethodPost, "/games", `{"player":"W"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown game", http.MethodGet, "/games/missing", "", http.StatusNotFound},
		{"bad team", http.MethodPost, "/games", `{"player":"x"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/games/" + st.ID + "/moves", `{`, http.StatusBadRequest},
		{"missing col", http.MethodPost, "/games/" + st.ID + "/moves", `{"row":1}`, http.StatusBadRequest},
		{"illegal", http.MethodPost, "/games/" + st.ID + "/moves", `{"row":0,"col":0}`, http.StatusUnprocessableEntity},
		{"off board", http.MethodPost, "/games/" + st.ID + "/moves", `{"row":9,"col":0}`, http.StatusUnprocessableEntity},
		{"nothing to undo", http.MethodPost, "/games/" + st.ID + "/undo", "", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doJSON(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body)
			}

			var e errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || e.Error == "" {
				t.Fatalf("expected a JSON error body, got %s", rec.Body)
			}
		})
	}
}
