// Package version reports the build's version, commit and build date.
//
// Values are set at link time and fall back to the VCS stamps Go embeds:
//
//	go build -ldflags "-X github.com/kbukum/localai-stt/version.Version=1.0.0" ./cmd/localai-stt
package version
