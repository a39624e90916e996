package vivian

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ContentCategory is the canonical classification of a fetched resource,
// independent of its exact MIME string.
type ContentCategory string

// Content categories.
const (
	CategoryHTML           ContentCategory = "html"
	CategoryPDF            ContentCategory = "pdf"
	CategoryImage          ContentCategory = "image"
	CategoryDocument       ContentCategory = "document"
	CategoryArchive        ContentCategory = "archive"
	CategoryAudioVideo     ContentCategory = "audio_video"
	CategoryPlainText      ContentCategory = "plain_text"
	CategoryStructuredText ContentCategory = "structured_text"
	CategoryBinary         ContentCategory = "binary"
)

// Extension returns the canonical file extension for the category.
// Unknown categories map to "bin".
func (c ContentCategory) Extension() string {
	switch c {
	case CategoryHTML:
		return "html"
	case CategoryPDF:
		return "pdf"
	case CategoryImage:
		return "jpg"
	case CategoryDocument:
		return "doc"
	case CategoryArchive:
		return "zip"
	case CategoryAudioVideo:
		return "mp4"
	case CategoryPlainText:
		return "txt"
	case CategoryStructuredText:
		return "json"
	default:
		return "bin"
	}
}

// mimeRule maps a MIME substring to a category and file extension.
type mimeRule struct {
	substr    string
	category  ContentCategory
	extension string
}

// mimeRules is checked in order; the first substring match wins.
var mimeRules = []mimeRule{
	{"text/html", CategoryHTML, "html"},
	{"application/xhtml", CategoryHTML, "html"},

	{"application/pdf", CategoryPDF, "pdf"},

	{"image/jpeg", CategoryImage, "jpg"},
	{"image/jpg", CategoryImage, "jpg"},
	{"image/png", CategoryImage, "png"},
	{"image/gif", CategoryImage, "gif"},
	{"image/webp", CategoryImage, "webp"},
	{"image/svg", CategoryImage, "svg"},

	{"application/msword", CategoryDocument, "doc"},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", CategoryDocument, "docx"},
	{"application/vnd.ms-excel", CategoryDocument, "xls"},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", CategoryDocument, "xlsx"},
	{"application/vnd.ms-powerpoint", CategoryDocument, "ppt"},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", CategoryDocument, "pptx"},

	{"text/plain", CategoryPlainText, "txt"},
	{"text/csv", CategoryStructuredText, "csv"},
	{"application/json", CategoryStructuredText, "json"},
	{"application/xml", CategoryStructuredText, "xml"},
	{"text/xml", CategoryStructuredText, "xml"},

	{"application/zip", CategoryArchive, "zip"},
	{"application/x-rar", CategoryArchive, "rar"},
	{"application/x-7z-compressed", CategoryArchive, "7z"},

	{"video/mp4", CategoryAudioVideo, "mp4"},
	{"video/avi", CategoryAudioVideo, "avi"},
	{"audio/mpeg", CategoryAudioVideo, "mp3"},
	{"audio/wav", CategoryAudioVideo, "wav"},
}

var urlExtensionRe = regexp.MustCompile(`^[a-zA-Z0-9]{1,5}$`)

// Classify maps a MIME type, with the URL path suffix as a fallback, to a
// content category and a file extension. Classification is total: anything
// unrecognized is CategoryBinary with extension "bin".
func Classify(mimeType, rawURL string) (ContentCategory, string) {
	mimeType = strings.ToLower(mimeType)
	if mimeType != "" {
		for _, r := range mimeRules {
			if strings.Contains(mimeType, r.substr) {
				return r.category, r.extension
			}
		}
	}

	if ext := urlExtension(rawURL); ext != "" {
		return categoryForExtension(ext), ext
	}

	return CategoryBinary, CategoryBinary.Extension()
}

// urlExtension returns the lower-cased suffix of the URL path if it looks
// like a file extension, or "" otherwise.
func urlExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	ext := base[i+1:]
	if !urlExtensionRe.MatchString(ext) {
		return ""
	}
	return strings.ToLower(ext)
}

func categoryForExtension(ext string) ContentCategory {
	for _, r := range mimeRules {
		if r.extension == ext {
			return r.category
		}
	}
	switch ext {
	case "htm":
		return CategoryHTML
	case "jpeg":
		return CategoryImage
	case "md":
		return CategoryPlainText
	}
	return CategoryBinary
}
