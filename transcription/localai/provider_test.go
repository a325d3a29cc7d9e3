package localai

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/localai-stt/errors"
	"github.com/kbukum/localai-stt/logger"
	"github.com/kbukum/localai-stt/observability"
	"github.com/kbukum/localai-stt/testutil"
	"github.com/kbukum/localai-stt/testutil/localaitest"
	"github.com/kbukum/localai-stt/transcription"
)

func startServer(t *testing.T, opts ...localaitest.Option) *localaitest.Server {
	t.Helper()
	s := localaitest.New(opts...)
	testutil.T(t).Setup(s)
	return s
}

func quietLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "json", Writer: &bytes.Buffer{}}, "test")
}

func newProvider(t *testing.T, cfg Config) *Provider {
	t.Helper()
	p, err := NewProvider(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.Model != DefaultModel || c.ServiceName != DefaultServiceName || c.Timeout != 120*time.Second {
		t.Errorf("defaults = %+v", c)
	}
}

func TestNewProviderNormalizesCredentials(t *testing.T) {
	p := newProvider(t, Config{ServerURL: "http://localhost:8080/", APIKey: "k"})
	creds := p.Credentials()
	if creds.ServerURL != "http://localhost:8080" {
		t.Errorf("ServerURL = %q", creds.ServerURL)
	}
	if creds.APIKey != "k" {
		t.Errorf("APIKey = %q", creds.APIKey)
	}
}

func TestNewProviderRejectsBadCredentials(t *testing.T) {
	_, err := NewProvider(Config{}, WithLogger(quietLogger()))
	if !errors.HasCode(err, errors.ErrCodeCredentialsInvalid) {
		t.Fatalf("expected CREDENTIALS_VALIDATION_FAILED, got %v", err)
	}
}

func TestTranscribeReader(t *testing.T) {
	server := startServer(t, localaitest.WithText("the quick brown fox"))
	p := newProvider(t, Config{ServerURL: server.URL() + "/", APIKey: "secret", Model: "whisper-base"})

	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		Audio: strings.NewReader("pcm-bytes"),
		User:  "alice",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "the quick brown fox" || resp.Model != "whisper-base" || resp.Provider != ProviderName {
		t.Errorf("response = %+v", resp)
	}

	req, ok := server.LastRequest()
	if !ok {
		t.Fatal("server saw no request")
	}
	if req.Path != localaitest.TranscriptionsPath {
		t.Errorf("path = %q", req.Path)
	}
	if req.Model != "whisper-base" || string(req.File) != "pcm-bytes" {
		t.Errorf("request = %+v", req)
	}
	if req.Authorization != "Bearer secret" {
		t.Errorf("Authorization = %q", req.Authorization)
	}
	if len(req.Fields) != 1 {
		t.Errorf("only the model field is sent, got %v", req.Fields)
	}
}

func TestTranscribeModelOverride(t *testing.T) {
	server := startServer(t)
	p := newProvider(t, Config{ServerURL: server.URL()})

	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		Audio: strings.NewReader("a"),
		Model: "whisper-large-v3",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Model != "whisper-large-v3" {
		t.Errorf("Model = %q", resp.Model)
	}
	if req, _ := server.LastRequest(); req.Model != "whisper-large-v3" {
		t.Errorf("sent model = %q", req.Model)
	}
}

func TestTranscribePath(t *testing.T) {
	server := startServer(t)
	p := newProvider(t, Config{ServerURL: server.URL()})

	path := filepath.Join(t.TempDir(), "standup.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{AudioPath: path}); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	req, _ := server.LastRequest()
	if req.FileName != "standup.mp3" || string(req.File) != "ID3" {
		t.Errorf("file part = %q %q", req.FileName, req.File)
	}
}

func TestTranscribeInputValidation(t *testing.T) {
	p := newProvider(t, Config{ServerURL: "http://localhost:1"})

	tests := []struct {
		name string
		req  transcription.TranscriptionRequest
	}{
		{"neither", transcription.TranscriptionRequest{}},
		{"both", transcription.TranscriptionRequest{AudioPath: "a.wav", Audio: strings.NewReader("a")}},
		{"missing file", transcription.TranscriptionRequest{AudioPath: filepath.Join(t.TempDir(), "nope.wav")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Transcribe(context.Background(), tc.req)
			if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestTranscribeMapsErrors(t *testing.T) {
	server := startServer(t)
	p := newProvider(t, Config{ServerURL: server.URL()})

	tests := []struct {
		resp localaitest.Response
		want errors.ErrorCode
	}{
		{localaitest.ErrorResponse(401, "bad key"), errors.ErrCodeUnauthorized},
		{localaitest.ErrorResponse(429, "busy"), errors.ErrCodeRateLimited},
		{localaitest.ErrorResponse(500, "model crashed"), errors.ErrCodeServiceUnavailable},
		{localaitest.ErrorResponse(400, "bad audio"), errors.ErrCodeBadRequest},
		{localaitest.Response{Status: 200, Body: `{}`}, errors.ErrCodeInvokeFailed},
	}
	for _, tc := range tests {
		t.Run(string(tc.want), func(t *testing.T) {
			server.Respond(tc.resp)
			_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: strings.NewReader("a")})
			appErr, ok := errors.AsAppError(err)
			if !ok || appErr.Code != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, err)
			}
			if !strings.HasPrefix(appErr.Message, "[localai] ") {
				t.Errorf("message = %q", appErr.Message)
			}
		})
	}
}

func TestTranscribeConnectionFailed(t *testing.T) {
	server := localaitest.New()
	if err := server.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	url := server.URL()
	_ = server.Stop(context.Background())

	p := newProvider(t, Config{ServerURL: url})
	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: strings.NewReader("a")})
	if !errors.HasCode(err, errors.ErrCodeConnectionFailed) {
		t.Fatalf("expected CONNECTION_FAILED, got %v", err)
	}
}

func TestTranscribeTraced(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	server := startServer(t)
	p := newProvider(t, Config{ServerURL: server.URL(), ServiceName: "stt-test"})
	if _, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: strings.NewReader("a")}); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "stt-test.localai" {
		t.Fatalf("spans = %v", spans)
	}
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[observability.AttrModel] != "whisper-1" {
		t.Errorf("model attribute = %q", attrs[observability.AttrModel])
	}
	if attrs[observability.AttrRequestID] == "" {
		t.Error("expected a request id attribute")
	}
}

func TestDescribe(t *testing.T) {
	p := newProvider(t, Config{ServerURL: "http://localhost:8080", Model: "whisper-1"})

	if got := p.Describe("").Model; got != "whisper-1" {
		t.Errorf("default Describe model = %q", got)
	}
	entity := p.Describe("custom")
	if entity.Model != "custom" || entity.Label.EnUS != "custom" {
		t.Errorf("entity = %+v", entity)
	}
}

func TestFactory(t *testing.T) {
	server := startServer(t)

	p, err := Factory(WithLogger(quietLogger()))(map[string]any{
		"server_url": server.URL(),
		"model":      "whisper-tiny",
		"timeout":    "30s",
	})
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	lp := p.(*Provider)
	t.Cleanup(func() { _ = lp.Close(context.Background()) })
	if lp.cfg.Timeout != 30*time.Second || lp.cfg.Model != "whisper-tiny" {
		t.Errorf("cfg = %+v", lp.cfg)
	}
	if !p.IsAvailable(context.Background()) {
		t.Error("provider should be available")
	}

	if _, err := Factory()(map[string]any{"server_url": server.URL(), "timeout": "later"}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for bad timeout, got %v", err)
	}
	for _, raw := range []map[string]any{
		{"server_url": 42},
		{"server_url": server.URL(), "api_key": []string{"k"}},
	} {
		if _, err := Factory()(raw); !errors.HasCode(err, errors.ErrCodeCredentialsInvalid) {
			t.Errorf("Factory(%v): expected CREDENTIALS_VALIDATION_FAILED, got %v", raw, err)
		}
	}

	p, err = Factory(WithLogger(quietLogger()))(map[string]any{"server_url": server.URL() + "/", "api_key": "secret"})
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	t.Cleanup(func() { _ = p.(*Provider).Close(context.Background()) })
	if creds := p.(*Provider).Credentials(); creds.ServerURL != server.URL() || creds.APIKey != "secret" {
		t.Errorf("credentials = %+v", creds)
	}
}

func TestConfigToMapRoundTrip(t *testing.T) {
	cfg := Config{ServerURL: "http://h:8080", APIKey: "k", Model: "m", Timeout: time.Minute, Headers: map[string]string{"X-A": "1"}}
	p, err := Factory(WithLogger(quietLogger()))(cfg.ToMap())
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	got := p.(*Provider).cfg
	if got.ServerURL != cfg.ServerURL || got.Timeout != cfg.Timeout || got.Headers["X-A"] != "1" {
		t.Errorf("round trip = %+v", got)
	}
}
