package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rocketscienceinc/matchsync/internal/feature"
	"github.com/rocketscienceinc/matchsync/pkg/api"
)

type featureCatalog interface {
	Keys() []string
	Get(key string) (feature.Feature, error)
}

type FeatureHandler interface {
	List(c *fiber.Ctx) error
}

type featureHandler struct {
	features featureCatalog
}

func NewFeatureHandler(features featureCatalog) FeatureHandler {
	return &featureHandler{
		features: features,
	}
}

// List returns the rules of every registered feature, ordered by key.
func (that *featureHandler) List(c *fiber.Ctx) error {
	keys := that.features.Keys()
	infos := make([]api.FeatureInfo, 0, len(keys))

	for _, key := range keys {
		current, err := that.features.Get(key)
		if err != nil {
			return err
		}

		infos = append(infos, api.FeatureInfo{
			Key:           current.Key,
			Shape:         string(current.Shape),
			TurnThreshold: current.TurnThreshold,
			HintBudget:    current.HintBudget,
			RewardAmount:  current.RewardAmount,
			MinPathLength: current.MinPathLength,
		})
	}

	return c.JSON(infos)
}
