package modelruntime

import "github.com/kbukum/localai-stt/provider"

// NewRegistry creates a registry of speech-to-text model factories.
func NewRegistry() *provider.Registry[Speech2TextModel] {
	return provider.NewRegistry[Speech2TextModel]()
}
