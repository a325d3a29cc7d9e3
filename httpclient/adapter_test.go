package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestAdapter_Do_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm error: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model field = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile error: %v", err)
		}
		defer file.Close()
		if header.Filename != "audio.wav" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "audio bytes" {
			t.Errorf("file data = %q", data)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hello world"}`))
	}))
	defer srv.Close()

	adapter, err := New(Config{Name: "localai", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	resp, err := adapter.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/v1/audio/transcriptions",
		Body: &MultipartBody{
			Fields: map[string]string{"model": "whisper-1"},
			Files:  []FileField{{FieldName: "file", FileName: "audio.wav", Reader: strings.NewReader("audio bytes")}},
		},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"text":"hello world"}` {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("headers = %v", resp.Headers)
	}
}

func TestAdapter_Do_HeadersAndAuth(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	adapter, _ := New(Config{
		Headers: map[string]string{"X-Default": "a", "X-Override": "default"},
		Auth:    BearerAuth("client-token"),
	})

	_, err := adapter.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    srv.URL + "/ping",
		Headers: map[string]string{"X-Override": "request"},
		Auth:    BearerAuth("request-token"),
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if got.Get("X-Default") != "a" || got.Get("X-Override") != "request" {
		t.Errorf("headers not merged: %v", got)
	}
	if got.Get("Authorization") != "Bearer request-token" {
		t.Errorf("Authorization = %q", got.Get("Authorization"))
	}
}

func TestAdapter_Do_StatusClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer srv.Close()

	adapter, _ := New(Config{BaseURL: srv.URL})
	resp, err := adapter.Do(context.Background(), Request{Method: http.MethodPost, Path: "x"})
	e, ok := AsError(err)
	if !ok || e.Code != ErrCodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("response should accompany status errors, got %+v", resp)
	}
	if e.ServerMessage() != "slow down" {
		t.Errorf("ServerMessage() = %q", e.ServerMessage())
	}
}

func TestAdapter_Do_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	adapter, _ := New(Config{})
	_, err := adapter.Do(context.Background(), Request{Method: http.MethodPost, Path: url})
	e, ok := AsError(err)
	if !ok || e.Code != ErrCodeConnection {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAdapter_Do_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	adapter, _ := New(Config{})
	_, err := adapter.Do(ctx, Request{Method: http.MethodPost, Path: srv.URL})
	e, ok := AsError(err)
	if !ok || e.Code != ErrCodeTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestAdapter_WithTransport(t *testing.T) {
	adapter, _ := New(Config{BaseURL: "http://localai.invalid"}, WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.String() != "http://localai.invalid/v1/models" {
			t.Errorf("url = %s", r.URL)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("ok")),
		}, nil
	})))
	resp, err := adapter.Do(context.Background(), Request{Path: "v1/models"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestAdapter_TransportError(t *testing.T) {
	boom := errors.New("boom")
	adapter, _ := New(Config{}, WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})))
	_, err := adapter.Do(context.Background(), Request{Path: "http://localai.invalid"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("transport failures are retryable")
	}
}

func TestEncodeBody(t *testing.T) {
	r, ct, err := encodeBody(map[string]string{"model": "whisper-1"})
	if err != nil || ct != "application/json" {
		t.Fatalf("json body: ct=%q err=%v", ct, err)
	}
	data, _ := io.ReadAll(r)
	if string(data) != `{"model":"whisper-1"}` {
		t.Errorf("json = %s", data)
	}

	if r, ct, _ := encodeBody(nil); r != nil || ct != "" {
		t.Error("nil body should encode to nothing")
	}
	if _, ct, _ := encodeBody("text"); ct != "text/plain" {
		t.Errorf("string ct = %q", ct)
	}
	if _, _, err := encodeBody(make(chan int)); err == nil {
		t.Error("expected error for unencodable body")
	}
}
