package catalog

// Image size tokens understood by the image CDN.
const (
	SizeThumb    = "w500"
	SizeOriginal = "original"
)

const (
	imageBaseURL     = "https://image.tmdb.org/t/p/"
	placeholderImage = "https://picsum.photos/500/750?grayscale"
)

// ImageURL resolves an upstream image path. An empty path yields the
// placeholder image.
func ImageURL(path, size string) string {
	if path == "" {
		return placeholderImage
	}
	if size == "" {
		size = SizeThumb
	}
	return imageBaseURL + size + path
}
