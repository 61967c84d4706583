// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// IndexUntracked is the Root.Index value for formats that do not record
// the position of a root within its word.
const IndexUntracked = -1

// Root attributes a morphological root to a surface word form.
type Root struct {
	// Word is the surface word form.
	Word string `json:"word" yaml:"word"`

	// Root is the morphological base form attributed to Word.
	Root string `json:"root" yaml:"root"`

	// Index is the zero-based ordinal of Root among the ROOT-tagged morphemes
	// of Word, or IndexUntracked when the input format carries no position.
	Index int `json:"index" yaml:"index"`
}

// String renders the record for log output.
func (r Root) String() string {
	return fmt.Sprintf("Root{word: %q, root: %q, index: %d}", r.Word, r.Root, r.Index)
}

// Kind selects the input line format.
type Kind string

const (
	// KindMorphemes is "word<TAB>text:TAG/text:TAG/...".
	KindMorphemes Kind = "morphemes"

	// KindPSQL is a psql array dump: "root | {word,word,...}".
	KindPSQL Kind = "psql"
)

// ErrUnsupportedKind is returned for a Kind other than morphemes or psql.
var ErrUnsupportedKind = errors.New("kind must be set either to 'morphemes' or to 'psql'")

// Kinds lists the supported input formats.
func Kinds() []Kind {
	return []Kind{KindMorphemes, KindPSQL}
}

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMorphemes, KindPSQL:
		return k, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedKind, s)
	}
}
