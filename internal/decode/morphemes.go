// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"strings"

	"github.com/pdiddy/roots-import/pkg/types"
)

const (
	fieldSep      = "\t"
	morphemeSep   = "/"
	descriptorSep = ":"
	rootTag       = "ROOT"
)

// Morphemes decodes "word<TAB>text:TAG/text:TAG/...". Every descriptor
// tagged exactly ROOT yields one record; Index counts ROOT descriptors
// only, so a word with two roots gets indexes 0 and 1 whatever else sits
// between them. A line without a ROOT descriptor yields no records.
func Morphemes(line string) ([]types.Root, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < 2 {
		return nil, malformed(types.KindMorphemes, line, "missing tab separator")
	}
	word := fields[0]

	var roots []types.Root
	for i, descriptor := range strings.Split(fields[1], morphemeSep) {
		parts := strings.Split(descriptor, descriptorSep)
		if len(parts) < 2 {
			return nil, malformed(types.KindMorphemes, line,
				"morpheme %d (%q) has no %q separator", i, descriptor, descriptorSep)
		}
		if parts[1] != rootTag {
			continue
		}
		roots = append(roots, types.Root{
			Word:  word,
			Root:  parts[0],
			Index: len(roots),
		})
	}
	return roots, nil
}
