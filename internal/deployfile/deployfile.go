// Package deployfile pins the source commit and runtime image tag inside the deploy workflow file.
package deployfile

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

// ErrKeyNotFound is returned when a key to pin is not present in the file
var ErrKeyNotFound = errors.New("key not found in deploy file")

// Strategy names how a file was rewritten
type Strategy string

const (
	// Structured edits go through the YAML AST. Comments elsewhere in the file survive, but an
	// inline comment on a pinned line is dropped along with the old value.
	Structured Strategy = "structured"
	// Textual edits replace whole "  KEY: ..." lines
	Textual Strategy = "textual"
)

// Field is one scalar under the section to overwrite
type Field struct {
	Key   string
	Value string
}

// Pin rewrites fields under section in the file at path. Either every field is written or the
// file is left untouched.
func Pin(path, section string, fields ...Field) (Strategy, error) {
	const errCtx = "pinning deploy file"

	data, err := os.ReadFile(path) //nolint:gosec // path is inside our own scratch clone
	if err != nil {
		return "", fmt.Errorf("%s: read %s: %w", errCtx, path, err)
	}

	out, strategy, err := PinBytes(data, section, fields...)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%s: stat %s: %w", errCtx, path, err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("%s: write %s: %w", errCtx, path, err)
	}

	slog.Info("Pinned deploy file", "path", path, "strategy", strategy)
	return strategy, nil
}

// PinBytes is Pin on an in-memory document. It tries a structured edit first and falls back to
// line replacement when the document does not parse or the keys are not where expected.
func PinBytes(data []byte, section string, fields ...Field) ([]byte, Strategy, error) {
	out, err := pinStructured(data, section, fields)
	if err == nil {
		return out, Structured, nil
	}
	slog.Warn("Structured YAML edit failed, falling back to line replacement", "error", err)

	out, err = pinTextual(data, fields)
	if err != nil {
		return nil, "", err
	}
	return out, Textual, nil
}

func pinStructured(data []byte, section string, fields []Field) ([]byte, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(file.Docs) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrKeyNotFound)
	}
	for _, doc := range file.Docs {
		if doc == nil || doc.Body == nil {
			return nil, fmt.Errorf("%w: empty document", ErrKeyNotFound)
		}
	}

	paths := make([]*yaml.Path, len(fields))
	for i, field := range fields {
		path := (&yaml.PathBuilder{}).Root().Child(section).Child(field.Key).Build()
		if node, err := path.FilterFile(file); err != nil || node == nil {
			return nil, fmt.Errorf("%w: %s.%s", ErrKeyNotFound, section, field.Key)
		}
		paths[i] = path
	}

	for i, field := range fields {
		if err := paths[i].ReplaceWithReader(file, strings.NewReader(quote(field.Value))); err != nil {
			return nil, fmt.Errorf("replace %s.%s: %w", section, field.Key, err)
		}
	}

	out := file.String()
	if bytes.HasSuffix(data, []byte("\n")) && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out), nil
}

// pinTextual replaces every line of the form `  KEY: anything` (two-space indent, literal key)
// with `  KEY: "value"`. Line endings, including CRLF, are left as they were.
func pinTextual(data []byte, fields []Field) ([]byte, error) {
	out := data
	for _, field := range fields {
		pattern := regexp.MustCompile(`(?m)^  ` + regexp.QuoteMeta(field.Key) + `: [^\r\n]*`)
		if !pattern.Match(out) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, field.Key)
		}
		out = pattern.ReplaceAllLiteral(out, []byte("  "+field.Key+": "+quote(field.Value)))
	}
	return out, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}
