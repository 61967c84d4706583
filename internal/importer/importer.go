// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer reads a corpus line by line, decodes each line into
// Root records, and hands them to a store.Sink.
//
// Duplicate keys are logged and skipped. Malformed lines are skipped with a
// warning, or abort the run in strict mode. Any other sink error aborts.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/roots-import/internal/decode"
	"github.com/pdiddy/roots-import/internal/store"
	"github.com/pdiddy/roots-import/pkg/types"
)

// maxLineSize bounds a single corpus line.
const maxLineSize = 1 << 20

// Summary holds counts from one import run.
type Summary struct {
	Lines      int
	Blank      int
	Malformed  int
	Records    int
	Inserted   int
	Duplicates int
}

// LineError attaches a 1-based input line number to a decode or sink error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Importer runs one import with a fixed kind and quality.
type Importer struct {
	decode  decode.Func
	sink    store.Sink
	kind    types.Kind
	quality string
	strict  bool
	logger  *zap.Logger
}

// New returns an Importer for cfg. It fails when cfg.Kind is unsupported,
// before any input is read.
func New(cfg types.ImportConfig, sink store.Sink, logger *zap.Logger) (*Importer, error) {
	fn, err := decode.For(cfg.Kind)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		decode:  fn,
		sink:    sink,
		kind:    cfg.Kind,
		quality: cfg.Quality,
		strict:  cfg.Strict,
		logger:  logger,
	}, nil
}

// Run imports every line of r. On error the summary covers the lines
// processed before the failure.
func (im *Importer) Run(ctx context.Context, r io.Reader) (Summary, error) {
	var summary Summary

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.Lines++
		raw := scanner.Bytes()
		if !utf8.Valid(raw) {
			if err := im.malformed(&summary, lineNo, &decode.ParseError{
				Kind:   im.kind,
				Input:  strings.ToValidUTF8(string(raw), "�"),
				Reason: "invalid UTF-8",
			}); err != nil {
				return summary, err
			}
			continue
		}

		line := strings.TrimSpace(string(raw))
		if line == "" {
			summary.Blank++
			continue
		}
		im.logger.Info("Decoding line", zap.Int("line", lineNo), zap.String("text", line))

		roots, err := im.decode(line)
		if err != nil {
			if err := im.malformed(&summary, lineNo, err); err != nil {
				return summary, err
			}
			continue
		}

		for _, root := range roots {
			summary.Records++
			if root.Word == "" || root.Root == "" {
				im.logger.Warn("Empty word or root",
					zap.Int("line", lineNo),
					zap.String("word", root.Word),
					zap.String("root", root.Root))
			}

			err := im.sink.Insert(ctx, root, im.quality)
			switch {
			case err == nil:
				summary.Inserted++
			case errors.Is(err, store.ErrDuplicate):
				summary.Duplicates++
				im.logger.Warn("Duplicate key", zap.Int("line", lineNo), zap.Stringer("root", root))
				im.logger.Debug("Duplicate key detail", zap.Error(err))
			default:
				return summary, &LineError{Line: lineNo, Err: err}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("reading input after line %d: %w", lineNo, err)
	}

	im.logger.Info("Import finished",
		zap.Int("lines", summary.Lines),
		zap.Int("records", summary.Records),
		zap.Int("inserted", summary.Inserted),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("malformed", summary.Malformed))

	return summary, nil
}

// malformed records a line that failed to decode. It returns a non-nil
// error only in strict mode.
func (im *Importer) malformed(summary *Summary, lineNo int, err error) error {
	summary.Malformed++
	if im.strict {
		return &LineError{Line: lineNo, Err: err}
	}
	im.logger.Warn("Skipping malformed line", zap.Int("line", lineNo), zap.Error(err))
	return nil
}
