package vivian

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the text of the located title element, or empty when none
	// was found.
	Title string

	// ContentHTML is the content root as HTML after sanitization and
	// truncation before the title.
	ContentHTML string

	// Text is the whitespace-normalized text of the content root.
	Text string
}

// Extractor strips an HTML page down to its main textual content.
type Extractor interface {
	// Extract parses raw HTML, removes boilerplate, locates the main
	// content and returns it as HTML and as normalized text. A page with
	// no locatable main content falls back to its body or whole document;
	// that is not an error.
	Extract(html string) (*ExtractResult, error)
}

// PageMetadata describes a page as reported by its reader-mode metadata.
type PageMetadata struct {
	Title    string
	Byline   string
	Excerpt  string
	SiteName string
}

// MetadataReader reads descriptive metadata from an HTML page.
type MetadataReader interface {
	// ReadMetadata parses raw HTML fetched from pageURL.
	ReadMetadata(html, pageURL string) (*PageMetadata, error)
}
