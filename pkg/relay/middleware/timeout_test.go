package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeout_FastHandlerPassesThrough(t *testing.T) {
	handler := Timeout(time.Second, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("expected handler body, got %q", rec.Body.String())
	}
}

func TestTimeout_SlowHandlerGets408(t *testing.T) {
	release := make(chan struct{})
	handler := Timeout(50*time.Millisecond, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("too late"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/lastfm/recent", nil))
	close(release)

	if rec.Code != http.StatusRequestTimeout {
		t.Fatalf("expected 408, got %d", rec.Code)
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode timeout body: %v", err)
	}
	if body.Error != "Request timeout" {
		t.Errorf("expected error %q, got %q", "Request timeout", body.Error)
	}
	if body.Message != "Request took longer than 50ms" {
		t.Errorf("expected message %q, got %q", "Request took longer than 50ms", body.Message)
	}
}

func TestTimeout_LateHandlerWriteIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	wrote := make(chan struct{})

	handler := Timeout(30*time.Millisecond, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("late payload"))
		close(wrote)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	// Let the handler finish its late write, then verify nothing leaked
	// into the already-sent timeout response.
	close(release)
	select {
	case <-wrote:
	case <-time.After(time.Second):
		t.Fatal("handler never finished")
	}

	if rec.Code != http.StatusRequestTimeout {
		t.Errorf("expected 408, got %d", rec.Code)
	}
	if got := rec.Body.String(); !json.Valid([]byte(got)) {
		t.Errorf("expected intact JSON timeout body, got %q", got)
	}
	if got := rec.Body.String(); len(got) > 0 && got[len(got)-1] != '\n' {
		t.Errorf("expected timeout body to end cleanly, got %q", got)
	}
}

func TestTimeout_HandlerThatStartedWritingWins(t *testing.T) {
	proceed := make(chan struct{})
	handler := Timeout(30*time.Millisecond, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("partial"))
		<-proceed
		w.Write([]byte(" response"))
	}))

	done := make(chan *httptest.ResponseRecorder)
	rec := httptest.NewRecorder()
	go func() {
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		done <- rec
	}()

	// Give the deadline time to fire while the handler is mid-response.
	time.Sleep(60 * time.Millisecond)
	close(proceed)

	select {
	case rec := <-done:
		if rec.Code != http.StatusOK {
			t.Errorf("expected handler's 200 to stand, got %d", rec.Code)
		}
		if rec.Body.String() != "partial response" {
			t.Errorf("expected full handler body, got %q", rec.Body.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("request never completed")
	}
}

func TestTimeout_PanicInHandlerReturns500(t *testing.T) {
	handler := Timeout(time.Second, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", rec.Code)
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode panic body: %v", err)
	}
	if body.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR code, got %q", body.Code)
	}
}
