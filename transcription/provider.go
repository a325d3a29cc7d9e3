package transcription

import (
	"context"

	"github.com/kbukum/localai-stt/modelruntime"
	"github.com/kbukum/localai-stt/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
}

// Describer is implemented by providers that can describe the model they
// would run, for hosts that list configurable models.
type Describer interface {
	Describe(model string) *modelruntime.AIModelEntity
}
