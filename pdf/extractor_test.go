package pdf_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a minimal PDF with one page per content stream and a
// correct cross-reference table.
func buildPDF(t *testing.T, streams ...string) []byte {
	t.Helper()

	var objects []string
	var kids []string
	fontObj := 3 + 2*len(streams)
	for i, s := range streams {
		pageObj := 3 + 2*i
		contentObj := pageObj + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>", contentObj, fontObj),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(s), s),
		)
	}
	objects = append([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(streams)),
	}, objects...)
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestTextExtractor_ExtractPages(t *testing.T) {
	t.Parallel()

	t.Run("returns text per page in order", func(t *testing.T) {
		t.Parallel()

		doc := buildPDF(t,
			"BT /F1 12 Tf 72 720 Td (Hello page one) Tj ET",
			"BT /F1 12 Tf 72 720 Td (Second page) Tj ET",
		)

		pages, err := pdf.NewTextExtractor().ExtractPages(doc)

		require.NoError(t, err)
		assert.Equal(t, []string{"Hello page one", "Second page"}, pages)
	})

	t.Run("decodes hex strings", func(t *testing.T) {
		t.Parallel()

		doc := buildPDF(t, "BT /F1 12 Tf 72 712 Td <48656C6C6F> Tj ET")

		pages, err := pdf.NewTextExtractor().ExtractPages(doc)

		require.NoError(t, err)
		assert.Equal(t, []string{"Hello"}, pages)
	})

	t.Run("joins kerned arrays", func(t *testing.T) {
		t.Parallel()

		doc := buildPDF(t, "BT /F1 12 Tf 72 720 Td [(Hel) -20 (lo)] TJ ET")

		pages, err := pdf.NewTextExtractor().ExtractPages(doc)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Contains(t, pages[0], "Hello")
	})

	t.Run("page without text is empty", func(t *testing.T) {
		t.Parallel()

		doc := buildPDF(t, "0 0 m 100 100 l S", "BT /F1 12 Tf 72 720 Td (text) Tj ET")

		pages, err := pdf.NewTextExtractor().ExtractPages(doc)

		require.NoError(t, err)
		assert.Equal(t, []string{"", "text"}, pages)
	})

	t.Run("feeds FileText", func(t *testing.T) {
		t.Parallel()

		doc := buildPDF(t, "BT /F1 12 Tf 72 720 Td (Only page) Tj ET")

		got := vivian.FileText("doc.pdf", doc, pdf.NewTextExtractor())

		assert.Equal(t, "Only page"+vivian.PageSeparator, got)
	})

	t.Run("rejects invalid PDF", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewTextExtractor().ExtractPages([]byte("not a pdf"))

		require.Error(t, err)
		assert.Equal(t, vivian.EINVALID, vivian.ErrorCode(err))
	})
}
