// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"strings"

	"github.com/pdiddy/roots-import/pkg/types"
)

// PSQL decodes a psql array dump row "root | {word,word,...}". The single
// root on the left is attributed to every word in the array. Every brace
// at either end of the array is stripped, so "{{a}}" reads as "a". An empty
// array "{}" yields one record with an empty word.
func PSQL(line string) ([]types.Root, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return nil, malformed(types.KindPSQL, line, "missing '|' separator")
	}
	root := strings.TrimSpace(fields[0])
	words := strings.TrimSpace(fields[1])
	words = strings.Trim(strings.Trim(words, "{"), "}")

	tokens := strings.Split(words, ",")
	roots := make([]types.Root, 0, len(tokens))
	for _, word := range tokens {
		roots = append(roots, types.Root{
			Word:  word,
			Root:  root,
			Index: types.IndexUntracked,
		})
	}
	return roots, nil
}
