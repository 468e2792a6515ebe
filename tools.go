//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/pressly/goose/v3/cmd/goose (go.mod tool directive)
// - github.com/matryer/moq: the *_mock_test.go files follow its output;
//   regenerate with `moq -out <file>_mock_test.go . <iface>`
