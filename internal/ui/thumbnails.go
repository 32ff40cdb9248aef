package ui

import (
	"bytes"
	"fmt"
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/ytget/img2video/internal/model"
)

// MakeThumbnail decodes an image, applies its EXIF orientation and scales
// and crops it to exactly width x height
func MakeThumbnail(data []byte, width, height int) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Thumbnail(img, width, height, imaging.Lanczos), nil
}

// buildThumbnails returns canvas images for up to limit inputs. Inputs that
// cannot be decoded are skipped.
func buildThumbnails(images []model.ImageInput, limit, width, height int) []fyne.CanvasObject {
	if limit > len(images) {
		limit = len(images)
	}

	thumbs := make([]fyne.CanvasObject, 0, limit)
	for _, in := range images[:limit] {
		img, err := MakeThumbnail(in.Data, width, height)
		if err != nil {
			log.Printf("Thumbnail for %s unavailable: %v", in.Name, err)
			continue
		}
		thumbs = append(thumbs, newThumbnailImage(img, width, height))
	}
	return thumbs
}

func newThumbnailImage(img image.Image, width, height int) *canvas.Image {
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	return c
}
