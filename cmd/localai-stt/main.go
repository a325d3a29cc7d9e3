// Command localai-stt transcribes audio files with a LocalAI server.
//
//	localai-stt [-config path] [-model name] [-schema] [-version] file...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/localai-stt/bootstrap"
	"github.com/kbukum/localai-stt/config"
	"github.com/kbukum/localai-stt/errors"
	"github.com/kbukum/localai-stt/logger"
	"github.com/kbukum/localai-stt/observability"
	"github.com/kbukum/localai-stt/transcription"
	"github.com/kbukum/localai-stt/transcription/localai"
	"github.com/kbukum/localai-stt/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configFile  string
	envFile     string
	model       string
	user        string
	schema      bool
	showVersion bool
	files       []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.configFile, "config", "", "path to config.yml (default: search ./cmd/localai-stt, ./config.yml)")
	fs.StringVar(&o.envFile, "env", "", "path to a .env file")
	fs.StringVar(&o.model, "model", "", "model name (overrides localai.model)")
	fs.StringVar(&o.user, "user", "", "end-user identifier passed with each request")
	fs.BoolVar(&o.schema, "schema", false, "print the model descriptor as JSON and exit")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] file...\n", serviceName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.files = fs.Args()
	if !o.showVersion && !o.schema && len(o.files) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("no audio files given")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "%s %s\n", serviceName, version.GetFullVersion())
		return 0
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg,
		config.WithConfigFile(opts.configFile),
		config.WithEnvFile(opts.envFile),
		config.WithEnvPrefix(envPrefix),
	); err != nil {
		return printError(stderr, err)
	}
	if cfg.Version == "" {
		cfg.Version = version.GetShortVersion()
	}
	if opts.model != "" {
		cfg.LocalAI.Model = opts.model
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return printError(stderr, err)
	}

	telemetry := observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	manager := transcription.NewManager()
	transcriber := transcription.NewComponent(manager,
		map[string]map[string]any{localai.ProviderName: cfg.LocalAI.ToMap()},
		localai.ProviderName,
	)
	// telemetry first: its Metrics feed the provider factory on Start.
	manager.Register(localai.ProviderName, func(raw map[string]any) (transcription.Provider, error) {
		var providerOpts []localai.Option
		if m := telemetry.Metrics(); m != nil {
			providerOpts = append(providerOpts, localai.WithMetrics(m))
		}
		return localai.Factory(providerOpts...)(raw)
	})
	if err := app.RegisterComponent(telemetry); err != nil {
		return printError(stderr, err)
	}
	if err := app.RegisterComponent(transcriber); err != nil {
		return printError(stderr, err)
	}

	err = app.RunTask(ctx, func(ctx context.Context) error {
		if opts.schema {
			p, err := manager.Get(ctx)
			if err != nil {
				return err
			}
			return printSchema(stdout, p, cfg.LocalAI.Model)
		}
		return transcribeAll(ctx, manager, opts, stdout, app.Logger)
	})
	if err != nil {
		return printError(stderr, err)
	}
	return 0
}

func printSchema(w io.Writer, p transcription.Provider, model string) error {
	d, ok := p.(transcription.Describer)
	if !ok {
		return fmt.Errorf("provider %s cannot describe models", p.Name())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d.Describe(model))
}

// transcribeAll prints "<file>: <text>" per file. It keeps going after a
// failure and returns the first error.
func transcribeAll(ctx context.Context, m *transcription.Manager, opts *options, w io.Writer, log *logger.Logger) error {
	var first error
	for _, file := range opts.files {
		resp, err := transcription.Transcribe(ctx, m, transcription.TranscriptionRequest{AudioPath: file, User: opts.user})
		if err != nil {
			log.Error("transcription failed", logger.Fields("file", file, logger.FieldError, err.Error()))
			if first == nil {
				first = err
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", file, resp.Text)
	}
	return first
}

// printError writes err as the JSON error body and returns the exit code.
func printError(w io.Writer, err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.New(errors.ErrCodeInternal, err.Error(), 0).WithCause(err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(appErr.ToResponse())
	return 1
}
