package transcription

import "io"

// TranscriptionRequest holds parameters for a transcription call.
// Exactly one of AudioPath or Audio must be set.
type TranscriptionRequest struct {
	// AudioPath is a local audio file. The provider opens and closes it.
	AudioPath string `json:"audio_path,omitempty"`
	// Audio is read as-is and never closed by the provider.
	Audio io.Reader `json:"-"`
	// Model overrides the provider's configured model.
	Model string `json:"model,omitempty"`
	// User identifies the end user on whose behalf audio is transcribed.
	User string `json:"user,omitempty"`
}

// TranscriptionResponse holds the result of a transcription call.
type TranscriptionResponse struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Model is the model that produced Text.
	Model string `json:"model"`
	// Provider is the backend that served the request.
	Provider string `json:"provider"`
}
