// Package transcription defines the provider interface and common types
// for turning audio files into text.
//
// Backends register factories on a Manager; a Component initializes them
// from config at startup and closes them on shutdown.
//
// # Backends
//
//   - transcription/localai: a self-hosted LocalAI server
//
// # Usage
//
//	mgr := transcription.NewManager()
//	mgr.Register(localai.ProviderName, localai.Factory())
//	_ = mgr.Initialize(localai.ProviderName, map[string]any{"server_url": "http://localhost:8080"})
//	result, err := transcription.Transcribe(ctx, mgr, transcription.TranscriptionRequest{AudioPath: "meeting.wav"})
package transcription
