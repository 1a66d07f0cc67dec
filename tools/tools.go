//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// mockgen - generates the repository mocks under internal/mocks
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Regenerate: go generate ./internal/mocks
//   Docs: https://github.com/uber-go/mock
//
// golangci-lint - lint aggregator used before sending changes
//   Install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@v1.61.0
//   Docs: https://golangci-lint.run
