package preprocess

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argprep/internal/model"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildPDF writes a minimal single-font PDF with one page per entry.
// An empty entry produces a page with an empty content stream.
func buildPDF(t *testing.T, pages []string) []byte {
	t.Helper()
	n := len(pages)
	objs := make([]string, 0, 3+2*n)
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pages {
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			5+2*i))
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract([]byte("  1. The contract was breached.\n"), model.PlainText)
	require.NoError(t, err)
	assert.Equal(t, "1. The contract was breached.", text)
}

func TestExtract_PlainTextLatin1Fallback(t *testing.T) {
	text, err := Extract([]byte("Caf\xe9 owner argues na\xefvely"), model.PlainText)
	require.NoError(t, err)
	assert.Equal(t, "Café owner argues naïvely", text)
}

func TestExtract_WordDoc(t *testing.T) {
	doc := buildDocx(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>1. First point</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">2. Second </w:t></w:r><w:r><w:t>point</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>Closing</w:t><w:tab/><w:t>remarks</w:t></w:r></w:p>
</w:body>
</w:document>`)

	text, err := Extract(doc, model.WordDoc)
	require.NoError(t, err)
	assert.Equal(t, "1. First point\n2. Second point\n\nClosing\tremarks", text)
}

func TestExtract_WordDocErrors(t *testing.T) {
	t.Run("not a zip archive", func(t *testing.T) {
		_, err := Extract([]byte("definitely not a docx"), model.WordDoc)
		assert.ErrorIs(t, err, ErrUnreadableDocument)
		var ee *ExtractionError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, model.WordDoc, ee.Kind)
	})

	t.Run("missing document part", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		_, err := zw.Create("word/styles.xml")
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = Extract(buf.Bytes(), model.WordDoc)
		assert.ErrorIs(t, err, ErrUnreadableDocument)
	})

	t.Run("malformed xml", func(t *testing.T) {
		doc := buildDocx(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p>`)
		_, err := Extract(doc, model.WordDoc)
		assert.ErrorIs(t, err, ErrUnreadableDocument)
	})
}

func TestExtract_PDFPages(t *testing.T) {
	content := buildPDF(t, []string{"1. First point text.", "", "2. Second point text."})

	text, err := Extract(content, model.PDF)
	require.NoError(t, err)
	assert.Equal(t, "1. First point text.\n2. Second point text.", text)
}

func TestProcessFile_PDF(t *testing.T) {
	content := buildPDF(t, []string{"1. First point text.", "", "2. Second point text."})

	res, err := ProcessFile(model.UploadedFile{Filename: "brief.pdf", Side: model.SideA, Content: content})
	require.NoError(t, err)
	assert.Equal(t, model.Numbered, res.Format)
	require.Len(t, res.Points, 2)
	assert.Equal(t, "First point text.", res.Points[0].Content)
	assert.Equal(t, "Second point text.", res.Points[1].Content)
	assert.Equal(t, 2, res.Metadata.PointCount)
}

func TestExtract_PDFUnreadable(t *testing.T) {
	_, err := Extract([]byte("this is not a pdf document"), model.PDF)
	assert.ErrorIs(t, err, ErrUnreadableDocument)
	var ee *ExtractionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, model.PDF, ee.Kind)
}
