package classify

import (
	"context"

	"github.com/civicpulse/backend/internal/models"
)

// Adapter classifies a report photo into an issue category. The production
// model lives elsewhere; the server only depends on this interface.
type Adapter interface {
	ClassifyImage(ctx context.Context, imageRef string) (models.Classification, error)
}
