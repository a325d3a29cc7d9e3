// Package modelruntime holds the contract between model adapters and the
// code that hosts them: typed credentials, model descriptors, the
// Speech2TextModel interface and the invocation wrapper that folds adapter
// errors into the shared error taxonomy.
//
// Adapters live in sub-packages (see modelruntime/localai) and are made
// available through a provider registry:
//
//	reg := modelruntime.NewRegistry()
//	reg.RegisterFactory("localai", localai.Factory())
//	model, _ := reg.Create("localai", nil)
//
//	creds, err := model.ValidateCredentials("whisper-1", raw)
//	text, err := modelruntime.Invoke(ctx, model, "whisper-1", creds, audio, "")
package modelruntime
