package lastfm

import "fmt"

// ImageSize selects one of the repeated <image> elements of an artist,
// album or track.
type ImageSize int

const (
	ImageSmall ImageSize = iota
	ImageMedium
	ImageLarge
	ImageExtraLarge
	ImageMega
)

// imageSizes maps each size to its name and to its position among the
// entity's <image> children. A new size needs an entry here and a
// constant above, otherwise lookups pick the wrong image.
var imageSizes = [...]struct {
	name  string
	index int
}{
	ImageSmall:      {"small", 0},
	ImageMedium:     {"medium", 1},
	ImageLarge:      {"large", 2},
	ImageExtraLarge: {"extralarge", 3},
	ImageMega:       {"mega", 4},
}

func (s ImageSize) valid() bool {
	return s >= 0 && int(s) < len(imageSizes)
}

func (s ImageSize) String() string {
	if !s.valid() {
		return fmt.Sprintf("ImageSize(%d)", int(s))
	}
	return imageSizes[s].name
}

// ParseImageSize converts a size name such as "large".
func ParseImageSize(name string) (ImageSize, error) {
	for i, s := range imageSizes {
		if s.name == name {
			return ImageSize(i), nil
		}
	}
	return 0, fmt.Errorf("lastfm: unknown image size %q", name)
}

// imageURL picks the image of the given size among entity's direct
// <image> children by position.
func imageURL(entity Node, size ImageSize) (string, error) {
	if !size.valid() {
		return "", fmt.Errorf("lastfm: unknown image size %d", int(size))
	}
	return entity.ChildText("image", imageSizes[size].index)
}

// imageURLs returns every direct <image> child of entity in order.
func imageURLs(entity Node) []string {
	images := entity.Children("image")
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.Text()
	}
	return out
}
