package archive

// Format identifies an archive output format (spec.md §4.7).
type Format string

const (
	FormatZip   Format = "zip"
	FormatTarGz Format = "tar.gz"
)

// Extension returns the archive filename suffix used in the cache key and
// Content-Disposition header.
func (f Format) Extension() string {
	switch f {
	case FormatZip:
		return "zip"
	default:
		return "tgz"
	}
}

// ContentType returns the MIME type spec.md §4.7 mandates per format.
func (f Format) ContentType() string {
	switch f {
	case FormatZip:
		return "application/zip"
	default:
		return "application/x-gzip"
	}
}

// ParseFormat maps the route segment/extension ("zip", "tar.gz", "tgz",
// "targz") to a
// Format, returning ok=false for anything else.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "zip":
		return FormatZip, true
	case "tar.gz", "tgz", "targz":
		return FormatTarGz, true
	default:
		return "", false
	}
}
