// Package preprocess turns uploaded argument documents into normalized text
// and ordered argument points.
//
// Every function in this package is pure: it holds no state between calls,
// performs no I/O beyond the bytes it is handed and is safe for concurrent use.
package preprocess

import (
	"strings"

	"argprep/internal/model"
)

// MaxFileSize is the upload ceiling in bytes (10 MiB).
const MaxFileSize int64 = 10 * 1024 * 1024

// AllowedExtensions lists the accepted extensions, lowercase with the leading dot.
var AllowedExtensions = []string{".txt", ".pdf", ".docx", ".doc"}

// Extension returns the lowercase suffix starting at the final ".", or "" when there is none.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i:])
}

// Admit checks extension and size before any parsing work is done.
func Admit(filename string, size int64) error {
	ext := Extension(filename)
	if !allowed(ext) {
		return &RejectionError{
			Reason:    ErrUnsupportedExtension,
			Extension: ext,
			Allowed:   append([]string(nil), AllowedExtensions...),
			Size:      size,
			Limit:     MaxFileSize,
		}
	}
	if size > MaxFileSize {
		return &RejectionError{
			Reason:    ErrFileTooLarge,
			Extension: ext,
			Allowed:   append([]string(nil), AllowedExtensions...),
			Size:      size,
			Limit:     MaxFileSize,
		}
	}
	return nil
}

func allowed(ext string) bool {
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// KindForFilename maps an admitted filename to the extractor that handles it.
func KindForFilename(filename string) (model.DocumentKind, error) {
	switch Extension(filename) {
	case ".txt":
		return model.PlainText, nil
	case ".pdf":
		return model.PDF, nil
	case ".docx", ".doc":
		return model.WordDoc, nil
	default:
		return 0, &RejectionError{
			Reason:    ErrUnsupportedExtension,
			Extension: Extension(filename),
			Allowed:   append([]string(nil), AllowedExtensions...),
			Limit:     MaxFileSize,
		}
	}
}
