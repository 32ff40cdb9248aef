package model

import "strings"

// ImagePrefix is the media type prefix of accepted selections
const ImagePrefix = "image/"

// RawFile is a candidate for selection as it comes from the file picker
type RawFile struct {
	Name      string // display name
	Data      []byte
	MediaType string // declared media type, e.g. "image/png"
}

// IsImage reports whether the declared media type is an image type
func (f RawFile) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.MediaType), ImagePrefix)
}

// ImageInput is a selected image. It is never mutated after selection.
type ImageInput struct {
	Name string
	Data []byte
}

// Size returns the byte length of the image data
func (in ImageInput) Size() int64 {
	return int64(len(in.Data))
}
