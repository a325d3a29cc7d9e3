package modelruntime

import (
	"context"
	"io"

	"github.com/kbukum/localai-stt/provider"
)

// Speech2TextModel is implemented by adapters that turn audio into text.
type Speech2TextModel interface {
	provider.Provider

	// ValidateCredentials checks creds locally and returns a normalized
	// copy. Failures are CREDENTIALS_VALIDATION_FAILED errors.
	ValidateCredentials(model string, creds Credentials) (Credentials, error)

	// Invoke transcribes file with the named model. file is read but not
	// closed. user identifies the end user and may be empty.
	Invoke(ctx context.Context, model string, creds Credentials, file io.Reader, user string) (string, error)

	// GetCustomizableModelSchema describes an operator-declared model.
	GetCustomizableModelSchema(model string, creds Credentials) *AIModelEntity

	// InvokeErrorMapping declares which error codes fold into which kinds.
	InvokeErrorMapping() ErrorMapping
}

// InvokeRequest bundles the arguments of Speech2TextModel.Invoke.
type InvokeRequest struct {
	Model       string
	Credentials Credentials
	File        io.Reader
	User        string
}

// AsRequestResponse exposes m through the provider interaction shape so
// provider middleware can wrap it. Errors pass through Invoke's mapping.
func AsRequestResponse(m Speech2TextModel) provider.RequestResponse[InvokeRequest, string] {
	return &modelRR{model: m}
}

type modelRR struct {
	model Speech2TextModel
}

func (r *modelRR) Name() string                         { return r.model.Name() }
func (r *modelRR) IsAvailable(ctx context.Context) bool { return r.model.IsAvailable(ctx) }

func (r *modelRR) Execute(ctx context.Context, req InvokeRequest) (string, error) {
	return Invoke(ctx, r.model, req.Model, req.Credentials, req.File, req.User)
}
