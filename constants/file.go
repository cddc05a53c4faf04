package constants

import "strings"

// Format is the coarse document family an upload is routed by.
type Format string

const (
	PDF   Format = "PDF"
	IMAGE Format = "IMAGE"
)

// Media types accepted on the upload path.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
)

// MaxUploadBytes is the default per-file upload cap (10 MiB).
const MaxUploadBytes int64 = 10 << 20

// AllowedExtensions holds the file extensions accepted for form uploads.
// "jpg" is intentionally absent: only the literal "jpeg" extension is accepted.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpeg": {},
	"png":  {},
}

// AllowedMediaTypes holds the declared content types accepted for form uploads.
var AllowedMediaTypes = map[string]Format{
	MediaTypePDF:  PDF,
	MediaTypeJPEG: IMAGE,
	MediaTypePNG:  IMAGE,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the Format for an extension, or "" when unsupported.
func MapExtToFormat(ext string) Format {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpeg", "png":
		return IMAGE
	default:
		return ""
	}
}

// MapMediaTypeToFormat returns the Format for a media type, or "" when unsupported.
func MapMediaTypeToFormat(mediaType string) Format {
	return AllowedMediaTypes[strings.ToLower(mediaType)]
}
