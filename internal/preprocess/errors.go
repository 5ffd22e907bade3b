package preprocess

import (
	"errors"
	"fmt"
	"strings"

	"argprep/internal/model"
)

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrFileTooLarge         = errors.New("file too large")
	ErrUnreadableDocument   = errors.New("unreadable document")
	ErrDecodeFailed         = errors.New("text decode failed")
	ErrInsufficientContent  = errors.New("file is empty or contains insufficient text")
	ErrNoFiles              = errors.New("no files submitted")
)

// RejectionError is returned by Admit. Reason is ErrUnsupportedExtension or ErrFileTooLarge.
type RejectionError struct {
	Reason    error
	Extension string
	Allowed   []string
	Size      int64
	Limit     int64
}

func (e *RejectionError) Error() string {
	if errors.Is(e.Reason, ErrFileTooLarge) {
		return fmt.Sprintf("File too large. Maximum size: %dMB", e.Limit/(1024*1024))
	}
	return "Invalid file type. Allowed types: " + strings.Join(e.Allowed, ", ")
}

func (e *RejectionError) Unwrap() error { return e.Reason }

// ExtractionError reports a backend failure while turning bytes into text.
// Reason is ErrUnreadableDocument or ErrDecodeFailed.
type ExtractionError struct {
	Kind    model.DocumentKind
	Reason  error
	Message string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("error reading %s document: %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error { return e.Reason }

// PreprocessError ties any failure of the file pipeline to the offending file.
type PreprocessError struct {
	Filename string
	Err      error
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *PreprocessError) Unwrap() error { return e.Err }
