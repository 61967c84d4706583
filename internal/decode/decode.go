// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decode turns one corpus line into Root records.
// Two line formats are supported, selected by types.Kind:
//
//	morphemes: word<TAB>text:TAG/text:TAG/...
//	psql:      root | {word,word,...}
//
// Decoders are pure functions of their input line. A line that does not
// match the expected shape yields a *ParseError and no records; the caller
// decides whether that aborts the run.
package decode

import (
	"fmt"

	"github.com/pdiddy/roots-import/pkg/types"
)

// Func decodes a single trimmed line.
type Func func(line string) ([]types.Root, error)

// For returns the decoder for kind. Any kind other than morphemes or psql
// returns an error wrapping types.ErrUnsupportedKind.
func For(kind types.Kind) (Func, error) {
	switch kind {
	case types.KindMorphemes:
		return Morphemes, nil
	case types.KindPSQL:
		return PSQL, nil
	default:
		return nil, fmt.Errorf("%w: got %q", types.ErrUnsupportedKind, string(kind))
	}
}

// Decode routes line to the decoder selected by kind.
func Decode(line string, kind types.Kind) ([]types.Root, error) {
	fn, err := For(kind)
	if err != nil {
		return nil, err
	}
	return fn(line)
}
