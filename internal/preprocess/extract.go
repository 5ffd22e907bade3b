package preprocess

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"

	"argprep/internal/model"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Extract converts raw document bytes into best-effort plain text, trimmed of
// surrounding whitespace.
func Extract(content []byte, kind model.DocumentKind) (string, error) {
	var (
		text string
		err  error
	)
	switch kind {
	case model.PlainText:
		text, err = extractPlain(content)
	case model.PDF:
		text, err = extractPDF(content)
	case model.WordDoc:
		text, err = extractWord(content)
	default:
		return "", &ExtractionError{Kind: kind, Reason: ErrUnreadableDocument, Message: "unsupported document kind"}
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// extractPlain decodes UTF-8 and falls back to Latin-1.
func extractPlain(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return "", &ExtractionError{Kind: model.PlainText, Reason: ErrDecodeFailed, Message: err.Error()}
	}
	return string(out), nil
}

// extractPDF concatenates page texts with a newline between pages.
// Pages without extractable text are skipped.
func extractPDF(content []byte) (text string, err error) {
	// the pdf backend panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Kind: model.PDF, Reason: ErrUnreadableDocument, Message: fmt.Sprint(r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Kind: model.PDF, Reason: ErrUnreadableDocument, Message: err.Error()}
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pt, perr := pageText(page)
		if perr != nil || strings.TrimSpace(pt) == "" {
			continue
		}
		b.WriteString(pt)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page text: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

// extractWord joins the paragraph texts of word/document.xml with newlines.
func extractWord(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Kind: model.WordDoc, Reason: ErrUnreadableDocument, Message: err.Error()}
	}
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", &ExtractionError{Kind: model.WordDoc, Reason: ErrUnreadableDocument, Message: "word/document.xml not found"}
	}
	rc, err := doc.Open()
	if err != nil {
		return "", &ExtractionError{Kind: model.WordDoc, Reason: ErrUnreadableDocument, Message: err.Error()}
	}
	defer rc.Close()

	paragraphs, err := wordParagraphs(rc)
	if err != nil {
		return "", &ExtractionError{Kind: model.WordDoc, Reason: ErrUnreadableDocument, Message: err.Error()}
	}
	return strings.Join(paragraphs, "\n"), nil
}

func wordParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		paragraphs []string
		cur        strings.Builder
		depth      int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					cur.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, cur.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return paragraphs, nil
}
