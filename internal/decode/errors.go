// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"fmt"

	"github.com/pdiddy/roots-import/pkg/types"
)

// ParseError reports a line that does not match the shape of its format.
type ParseError struct {
	Kind   types.Kind
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s line %q: %s", e.Kind, e.Input, e.Reason)
}

func malformed(kind types.Kind, line, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Input: line, Reason: fmt.Sprintf(format, args...)}
}
