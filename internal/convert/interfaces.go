package convert

import (
	"context"

	"github.com/ytget/img2video/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.Job))
	Convert(ctx context.Context, images []model.ImageInput, params model.Params) (*model.Result, error)
	Snapshot() model.Job
	IsConverting() bool
}
