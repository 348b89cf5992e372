package pdfs

import (
	"context"
	"image"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
)

// Rasterizer is the surface-to-bitmap capability: render the fully laid-out
// quote template into one tall bitmap at print oversampling. The pipeline
// owns only the pagination that follows; rendering is delegated here.
type Rasterizer interface {
	Rasterize(ctx context.Context, quote *models.QuoteData) (image.Image, error)
}
