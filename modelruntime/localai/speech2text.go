package localai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/localai-stt/errors"
	"github.com/kbukum/localai-stt/httpclient"
	"github.com/kbukum/localai-stt/logger"
	"github.com/kbukum/localai-stt/modelruntime"
	"github.com/kbukum/localai-stt/observability"
	"github.com/kbukum/localai-stt/provider"
	"github.com/kbukum/localai-stt/version"
)

const (
	// ProviderName is the registered name of the adapter.
	ProviderName = "localai"

	// TranscriptionsPath is appended to server_url by Invoke.
	TranscriptionsPath = "/v1/audio/transcriptions"

	// DefaultTimeout bounds one transcription round trip.
	DefaultTimeout = 120 * time.Second

	defaultFileName = "file"
	headerRequestID = "X-Request-ID"
	headerUserAgent = "User-Agent"
)

// ErrMissingText is returned when the server answers 2xx with JSON that
// has no "text" key.
var ErrMissingText = stderrors.New("localai: response has no text field")

// Config configures the HTTP side of the adapter.
type Config struct {
	Timeout time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// Speech2Text implements modelruntime.Speech2TextModel against LocalAI.
type Speech2Text struct {
	client *httpclient.Adapter
	log    *logger.Logger
}

var _ modelruntime.Speech2TextModel = (*Speech2Text)(nil)

// New creates the adapter. opts customize the underlying HTTP client.
func New(cfg Config, opts ...httpclient.Option) (*Speech2Text, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	headers := maps.Clone(cfg.Headers)
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	if _, ok := headers[headerUserAgent]; !ok {
		headers[headerUserAgent] = version.UserAgent()
	}
	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		Timeout: cfg.Timeout,
		Headers: headers,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("localai: %w", err)
	}
	return &Speech2Text{
		client: client,
		log:    logger.Get(ProviderName),
	}, nil
}

// Factory builds adapters from a config map with optional "timeout"
// (time.Duration, duration string or seconds) and "headers" keys.
func Factory(opts ...httpclient.Option) provider.Factory[modelruntime.Speech2TextModel] {
	return func(cfg map[string]any) (modelruntime.Speech2TextModel, error) {
		var c Config
		if v, ok := cfg["timeout"]; ok {
			d, err := parseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("localai: timeout: %w", err)
			}
			c.Timeout = d
		}
		switch h := cfg["headers"].(type) {
		case map[string]string:
			c.Headers = h
		case map[string]any:
			c.Headers = make(map[string]string, len(h))
			for k, v := range h {
				c.Headers[k] = fmt.Sprint(v)
			}
		}
		return New(c, opts...)
	}
}

// Name returns ProviderName.
func (s *Speech2Text) Name() string { return ProviderName }

// IsAvailable is true once constructed; reachability is only learned by
// invoking.
func (s *Speech2Text) IsAvailable(context.Context) bool { return true }

// Close releases idle connections held by the HTTP client.
func (s *Speech2Text) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

// ValidateCredentials checks creds locally and returns a copy whose
// server_url has one trailing slash removed. No request is sent.
func (s *Speech2Text) ValidateCredentials(model string, creds modelruntime.Credentials) (modelruntime.Credentials, error) {
	if err := creds.Validate(); err != nil {
		return modelruntime.Credentials{}, errors.CredentialsValidationFailed(err)
	}
	return creds.Normalized(), nil
}

// Invoke posts file to {server_url}/v1/audio/transcriptions and returns
// the transcript. server_url is used as given. file is not closed.
// HTTP failures are returned as one of the five invoke kinds.
func (s *Speech2Text) Invoke(ctx context.Context, model string, creds modelruntime.Credentials, file io.Reader, user string) (string, error) {
	if file == nil {
		return "", errors.BadRequest("no audio file supplied")
	}

	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}
	log := s.log.WithContext(ctx)
	observability.SetSpanAttribute(ctx, observability.AttrModel, model)
	observability.SetSpanAttribute(ctx, observability.AttrRequestID, requestID)

	url := creds.ServerURL + TranscriptionsPath
	log.Debug("sending transcription request", logger.Fields(
		logger.FieldModel, model,
		logger.FieldServerURL, creds.ServerURL,
		logger.FieldUser, user,
	))

	resp, err := s.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    url,
		Headers: map[string]string{headerRequestID: requestID, "Accept": "application/json"},
		Auth:    httpclient.BearerAuth(creds.APIKey),
		Body: &httpclient.MultipartBody{
			Fields: map[string]string{"model": model},
			Files: []httpclient.FileField{{
				FieldName: "file",
				FileName:  fileName(file),
				Reader:    file,
			}},
		},
	})
	if err != nil {
		return "", toInvokeError(err)
	}

	log.Debug("transcription response", logger.Fields("body", string(resp.Body)))

	var out struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("localai: decode transcription response: %w", err)
	}
	if out.Text == nil {
		return "", ErrMissingText
	}
	return *out.Text, nil
}

// GetCustomizableModelSchema describes an operator-named LocalAI model.
func (s *Speech2Text) GetCustomizableModelSchema(model string, _ modelruntime.Credentials) *modelruntime.AIModelEntity {
	return &modelruntime.AIModelEntity{
		Model:           model,
		Label:           modelruntime.NewI18nObject(model),
		FetchFrom:       modelruntime.FetchFromCustomizableModel,
		ModelType:       modelruntime.ModelTypeSpeech2Text,
		ModelProperties: map[modelruntime.ModelPropertyKey]any{},
		ParameterRules:  []modelruntime.ParameterRule{},
	}
}

// InvokeErrorMapping maps each of the five invoke kinds to itself; Invoke
// already returns those kinds.
func (s *Speech2Text) InvokeErrorMapping() modelruntime.ErrorMapping {
	return modelruntime.IdentityMapping(errors.InvokeCodes()...)
}

// toInvokeError converts a classified HTTP failure into an invoke kind.
// Errors that did not come from the HTTP client are returned unchanged.
func toInvokeError(err error) error {
	httpErr, ok := httpclient.AsError(err)
	if !ok {
		return err
	}

	var appErr *errors.AppError
	switch httpErr.Code {
	case httpclient.ErrCodeTimeout, httpclient.ErrCodeConnection:
		appErr = errors.ConnectionFailed(ProviderName)
	case httpclient.ErrCodeServer:
		appErr = errors.ServiceUnavailable(ProviderName)
	case httpclient.ErrCodeRateLimit:
		appErr = errors.RateLimited(ProviderName)
	case httpclient.ErrCodeAuth:
		appErr = errors.Unauthorized(reason(httpErr))
	case httpclient.ErrCodeValidation, httpclient.ErrCodeNotFound:
		appErr = errors.BadRequest(reason(httpErr))
	default:
		return err
	}
	if httpErr.StatusCode > 0 {
		appErr.WithDetail("status", httpErr.StatusCode)
	}
	return appErr.WithCause(err)
}

// reason prefers the server's own message; requests that never left the
// client fall back to the local error text.
func reason(e *httpclient.Error) string {
	if msg := e.ServerMessage(); msg != "" {
		return msg
	}
	if e.StatusCode == 0 {
		return e.Error()
	}
	return ""
}

// fileName picks the multipart filename from readers that carry one,
// such as *os.File.
func fileName(r io.Reader) string {
	if n, ok := r.(interface{ Name() string }); ok {
		if base := filepath.Base(n.Name()); base != "." && base != string(filepath.Separator) && base != "" {
			return base
		}
	}
	return defaultFileName
}

func parseDuration(v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		return time.ParseDuration(d)
	case int:
		return time.Duration(d) * time.Second, nil
	case int64:
		return time.Duration(d) * time.Second, nil
	case float64:
		return time.Duration(d * float64(time.Second)), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
