// Package buildinfo exposes version information of the emulator binaries.
//
// Values are injected with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/microdog-go/internal/infra/buildinfo.Version=v0.3.0"
//
// When Commit is not injected it is taken from the VCS stamp the Go
// toolchain embeds in module builds.
package buildinfo
