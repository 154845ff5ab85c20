package classify

import (
	"context"

	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/utils"
)

// MockAdapter returns a deterministic classification keyed off the image
// reference, so repeated calls for the same photo agree.
type MockAdapter struct {
	ModelVersion string
}

var mockClasses = []struct {
	className string
	category  models.Category
}{
	{"pothole", models.CategoryRoadDamage},
	{"cracked asphalt", models.CategoryRoadDamage},
	{"garbage pile", models.CategoryGarbage},
	{"overflowing bin", models.CategoryGarbage},
	{"water leak", models.CategoryWaterLeak},
	{"broken streetlight", models.CategoryBrokenInfra},
	{"damaged bench", models.CategoryBrokenInfra},
	{"unidentified object", models.CategoryOther},
}

func (m MockAdapter) ClassifyImage(ctx context.Context, imageRef string) (models.Classification, error) {
	h := utils.HashStringToUint64(imageRef)
	// Reduce in uint64 space; int(h) goes negative when the top bit is set.
	entry := mockClasses[int(h%uint64(len(mockClasses)))]

	probability := 0.92
	if h%5 == 0 {
		probability = 0.64
	}

	return models.Classification{
		ClassName:   entry.className,
		Probability: probability,
		Category:    entry.category,
	}, nil
}
