package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrUnsupportedType is returned for file extensions the extractor cannot
// handle.
var ErrUnsupportedType = errors.New("extract: unsupported file type")

// CommandRunner abstracts external tool execution so PDF extraction can be
// tested without pdftotext installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor turns uploaded file bytes into plain text. TXT is read directly,
// DOCX is unpacked from its zip container, PDF is handed to pdftotext.
type Extractor struct {
	runner CommandRunner
}

func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner injects a command runner; used by tests.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Text extracts plain text from the given file content, dispatching on the
// filename extension.
func (e *Extractor) Text(ctx context.Context, filename string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return fromTXT(content), nil
	case ".docx":
		return fromDOCX(content)
	case ".pdf":
		return e.fromPDF(ctx, content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(filename))
	}
}

// fromTXT decodes the bytes as UTF-8, retrying as GBK for legacy Chinese
// text files. No upload is rejected outright.
func fromTXT(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(decoded)
}

// fromPDF shells out to pdftotext, feeding the bytes through a temp file and
// reading the text from stdout.
func (e *Extractor) fromPDF(ctx context.Context, content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	tmp.Close()

	out, err := e.runner.Run(ctx, "pdftotext", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("extract pdf: pdftotext failed: %w", err)
	}
	return string(bytes.TrimRight(out, "\x0c\n")), nil
}
