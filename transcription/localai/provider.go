// Package localai provides a transcription.Provider backed by a LocalAI
// server's OpenAI-compatible audio endpoint.
package localai

import (
	"context"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/localai-stt/errors"
	"github.com/kbukum/localai-stt/httpclient"
	"github.com/kbukum/localai-stt/logger"
	"github.com/kbukum/localai-stt/modelruntime"
	stt "github.com/kbukum/localai-stt/modelruntime/localai"
	"github.com/kbukum/localai-stt/observability"
	"github.com/kbukum/localai-stt/provider"
	"github.com/kbukum/localai-stt/transcription"
)

const (
	// ProviderName is the registered name for this provider.
	ProviderName = stt.ProviderName

	// DefaultModel is the model name LocalAI's whisper gallery entries use.
	DefaultModel = "whisper-1"

	// DefaultServiceName prefixes tracing span names.
	DefaultServiceName = "localai-stt"
)

// Config holds LocalAI provider configuration.
type Config struct {
	ServerURL   string            `yaml:"server_url" mapstructure:"server_url"`
	APIKey      string            `yaml:"api_key" mapstructure:"api_key"`
	Model       string            `yaml:"model" mapstructure:"model"`
	Timeout     time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	ServiceName string            `yaml:"service_name" mapstructure:"service_name"`
	Headers     map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = stt.DefaultTimeout
	}
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
}

// Credentials returns the connection part of c.
func (c *Config) Credentials() modelruntime.Credentials {
	return modelruntime.Credentials{ServerURL: c.ServerURL, APIKey: c.APIKey}
}

type rr = provider.RequestResponse[transcription.TranscriptionRequest, *transcription.TranscriptionResponse]

// Provider implements transcription.Provider.
type Provider struct {
	model *stt.Speech2Text
	creds modelruntime.Credentials
	cfg   Config
	log   *logger.Logger
	exec  rr
}

var (
	_ transcription.Provider  = (*Provider)(nil)
	_ transcription.Describer = (*Provider)(nil)
	_ provider.Closeable      = (*Provider)(nil)
)

// Option customizes a Provider.
type Option func(*options)

type options struct {
	log      *logger.Logger
	metrics  *observability.Metrics
	httpOpts []httpclient.Option
}

// WithLogger overrides the provider logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records each transcription on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHTTPOptions passes options through to the HTTP client.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.httpOpts = append(o.httpOpts, opts...) }
}

// NewProvider validates cfg's credentials and builds a provider. The
// server is not contacted.
func NewProvider(cfg Config, opts ...Option) (*Provider, error) {
	cfg.ApplyDefaults()
	o := &options{log: logger.Get(ProviderName)}
	for _, opt := range opts {
		opt(o)
	}

	model, err := stt.New(stt.Config{Timeout: cfg.Timeout, Headers: cfg.Headers}, o.httpOpts...)
	if err != nil {
		return nil, err
	}
	creds, err := model.ValidateCredentials(cfg.Model, cfg.Credentials())
	if err != nil {
		return nil, err
	}

	p := &Provider{model: model, creds: creds, cfg: cfg, log: o.log}

	adapted := provider.Adapt(modelruntime.AsRequestResponse(model), ProviderName, p.toInvoke, p.fromText)
	var metrics provider.Middleware[transcription.TranscriptionRequest, *transcription.TranscriptionResponse]
	if o.metrics != nil {
		metrics = provider.WithMetrics[transcription.TranscriptionRequest, *transcription.TranscriptionResponse](o.metrics)
	}
	p.exec = provider.Chain(
		provider.WithLogging[transcription.TranscriptionRequest, *transcription.TranscriptionResponse](o.log),
		provider.WithTracing[transcription.TranscriptionRequest, *transcription.TranscriptionResponse](cfg.ServiceName),
		metrics,
	)(adapted)

	o.log.Info("localai provider ready", logger.Fields(
		logger.FieldServerURL, creds.ServerURL,
		logger.FieldModel, cfg.Model,
	))
	return p, nil
}

// Factory returns a provider.Factory that decodes the config map into
// Config. server_url and api_key go through modelruntime.CredentialsFromMap;
// timeout accepts a duration string such as "90s".
func Factory(opts ...Option) provider.Factory[transcription.Provider] {
	return func(raw map[string]any) (transcription.Provider, error) {
		creds, err := modelruntime.CredentialsFromMap(raw)
		if err != nil {
			return nil, err
		}
		rest := maps.Clone(raw)
		delete(rest, modelruntime.KeyServerURL)
		delete(rest, modelruntime.KeyAPIKey)

		cfg := Config{ServerURL: creds.ServerURL, APIKey: creds.APIKey}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
			Result:     &cfg,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(rest); err != nil {
			return nil, errors.Validation(fmt.Sprintf("localai config: %v", err)).WithCause(err)
		}
		return NewProvider(cfg, opts...)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider can take requests.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.model.IsAvailable(ctx)
}

// Credentials returns the normalized credentials in use.
func (p *Provider) Credentials() modelruntime.Credentials {
	return p.creds.Clone()
}

// Transcribe sends audio to LocalAI. When req.AudioPath is set the file is
// opened and closed here; a caller-supplied req.Audio is left open.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	switch {
	case req.Audio != nil && req.AudioPath != "":
		return nil, errors.Validation("set either audio_path or audio, not both")
	case req.Audio == nil && req.AudioPath == "":
		return nil, errors.Validation("audio_path or audio is required")
	}

	if req.AudioPath != "" {
		f, err := os.Open(req.AudioPath)
		if err != nil {
			return nil, errors.Validation(fmt.Sprintf("open audio file: %v", err)).
				WithCause(err).WithDetail("audio_path", req.AudioPath)
		}
		defer func() { _ = f.Close() }()
		req.Audio = f
	}
	if req.Model == "" {
		req.Model = p.cfg.Model
	}

	resp, err := p.exec.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	resp.Model = req.Model
	return resp, nil
}

// Describe returns the customizable-model descriptor for model, or for
// the configured model when model is empty.
func (p *Provider) Describe(model string) *modelruntime.AIModelEntity {
	if model == "" {
		model = p.cfg.Model
	}
	return p.model.GetCustomizableModelSchema(model, p.creds)
}

// Close releases the HTTP client's idle connections.
func (p *Provider) Close(ctx context.Context) error {
	return p.model.Close(ctx)
}

func (p *Provider) toInvoke(_ context.Context, req transcription.TranscriptionRequest) (modelruntime.InvokeRequest, error) {
	return modelruntime.InvokeRequest{
		Model:       req.Model,
		Credentials: p.creds,
		File:        req.Audio,
		User:        req.User,
	}, nil
}

func (p *Provider) fromText(text string) (*transcription.TranscriptionResponse, error) {
	return &transcription.TranscriptionResponse{Text: text, Provider: ProviderName}, nil
}

// ToMap renders c in the form Factory accepts.
func (c Config) ToMap() map[string]any {
	m := c.Credentials().ToMap()
	m["model"] = c.Model
	m["service_name"] = c.ServiceName
	if c.Timeout > 0 {
		m["timeout"] = c.Timeout
	}
	if len(c.Headers) > 0 {
		m["headers"] = c.Headers
	}
	return m
}
