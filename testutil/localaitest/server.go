// Package localaitest provides an in-process fake of the LocalAI audio
// transcription endpoint for tests.
package localaitest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/localai-stt/component"
	"github.com/kbukum/localai-stt/testutil"
)

// Name is the component name of the fake server.
const Name = "localaitest"

// TranscriptionsPath is the only route the fake serves.
const TranscriptionsPath = "/v1/audio/transcriptions"

// DefaultText is returned when no response is configured.
const DefaultText = "hello from localai"

// Request is what the fake recorded about one transcription call.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	ContentType   string
	Model         string
	FileName      string
	File          []byte
	// Fields holds every non-file form field.
	Fields map[string]string
}

// Response is the canned answer for transcription calls.
type Response struct {
	Status int
	Body   string
	Delay  time.Duration
}

// TextResponse answers 200 with {"text": text}.
func TextResponse(text string) Response {
	body, _ := json.Marshal(map[string]string{"text": text})
	return Response{Status: http.StatusOK, Body: string(body)}
}

// ErrorResponse answers status with an OpenAI-style error body.
func ErrorResponse(status int, message string) Response {
	body, _ := json.Marshal(map[string]any{"error": map[string]any{"message": message, "code": status}})
	return Response{Status: status, Body: string(body)}
}

// Option configures a Server.
type Option func(*Server)

// WithText sets the transcript returned by default.
func WithText(text string) Option {
	return func(s *Server) { s.initial = TextResponse(text) }
}

// WithResponse sets the default response.
func WithResponse(r Response) Option {
	return func(s *Server) { s.initial = r }
}

// Server is a fake LocalAI server implementing testutil.TestComponent.
type Server struct {
	mu       sync.Mutex
	srv      *httptest.Server
	initial  Response
	response Response
	requests []Request
}

var _ testutil.TestComponent = (*Server)(nil)

type snapshot struct {
	response Response
	requests []Request
}

// New creates a stopped fake server.
func New(opts ...Option) *Server {
	s := &Server{initial: TextResponse(DefaultText)}
	for _, opt := range opts {
		opt(s)
	}
	s.response = s.initial
	return s
}

// Name implements component.Component.
func (s *Server) Name() string { return Name }

// Start begins listening on a loopback port.
func (s *Server) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return fmt.Errorf("%s: already started", Name)
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return nil
}

// Stop closes the listener and waits for in-flight requests.
func (s *Server) Stop(context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Health implements component.Component.
func (s *Server) Health(context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return component.Health{Name: Name, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: Name, Status: component.StatusHealthy, Message: s.srv.URL}
}

// Reset forgets recorded requests and restores the initial response.
func (s *Server) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
	s.response = s.initial
	return nil
}

// Snapshot captures the configured response and recorded requests.
func (s *Server) Snapshot(context.Context) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{response: s.response, requests: slices.Clone(s.requests)}, nil
}

// Restore returns to a state captured by Snapshot.
func (s *Server) Restore(_ context.Context, snap interface{}) error {
	st, ok := snap.(snapshot)
	if !ok {
		return fmt.Errorf("%s: unexpected snapshot type %T", Name, snap)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.response = st.response
	s.requests = slices.Clone(st.requests)
	return nil
}

// URL is the server_url to hand to the adapter. Empty until Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// Respond changes the answer for subsequent calls.
func (s *Server) Respond(r Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.response = r
}

// Requests returns a copy of every recorded request.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// LastRequest returns the most recent request, if any.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	rec := Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-ID"),
		ContentType:   r.Header.Get("Content-Type"),
		Fields:        map[string]string{},
	}

	if r.URL.Path != TranscriptionsPath {
		s.record(rec)
		writeResponse(w, ErrorResponse(http.StatusNotFound, "route not found: "+r.URL.Path))
		return
	}
	if r.Method != http.MethodPost {
		s.record(rec)
		writeResponse(w, ErrorResponse(http.StatusMethodNotAllowed, "method not allowed"))
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.record(rec)
		writeResponse(w, ErrorResponse(http.StatusBadRequest, "invalid multipart body: "+err.Error()))
		return
	}
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			rec.Fields[k] = v[0]
		}
	}
	rec.Model = rec.Fields["model"]

	file, hdr, err := r.FormFile("file")
	if err != nil {
		s.record(rec)
		writeResponse(w, ErrorResponse(http.StatusBadRequest, "file is required"))
		return
	}
	rec.File, _ = io.ReadAll(file)
	rec.FileName = hdr.Filename
	_ = file.Close()

	resp := s.record(rec)
	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-r.Context().Done():
			return
		}
	}
	writeResponse(w, resp)
}

// record stores rec and returns the response to send.
func (s *Server) record(rec Request) Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, rec)
	return s.response
}

func writeResponse(w http.ResponseWriter, r Response) {
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, r.Body)
}
