package vivian

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PageSeparator follows the text of each PDF page in FileText output.
const PageSeparator = "\nEND PAGE\n"

// PDFTextExtractor extracts the text of each page of a PDF document.
type PDFTextExtractor interface {
	ExtractPages(content []byte) ([]string, error)
}

// FileText returns readable text for a stored file. PDF files are converted
// page by page with pdf; any other content is used as-is when it is valid
// UTF-8. Content that cannot be read yields a bracketed placeholder naming
// the file instead of an error. The result passes through ReplaceTypography.
func FileText(name string, content []byte, pdf PDFTextExtractor) string {
	var text string
	switch {
	case strings.ToLower(filepath.Ext(name)) == ".pdf":
		text = pdfText(name, content, pdf)
	case utf8.Valid(content):
		text = string(content)
	default:
		text = fmt.Sprintf("[Binary file content - %s]", name)
	}
	return ReplaceTypography(text)
}

func pdfText(name string, content []byte, pdf PDFTextExtractor) string {
	if pdf == nil {
		return fmt.Sprintf("[PDF file content extraction failed - %s]", name)
	}
	pages, err := pdf.ExtractPages(content)
	if err != nil {
		return fmt.Sprintf("[PDF file content extraction failed - %s]", name)
	}

	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page)
		b.WriteString(PageSeparator)
	}
	if strings.TrimSpace(b.String()) == "" {
		return fmt.Sprintf("[PDF file content could not be extracted - %s]", name)
	}
	return b.String()
}
