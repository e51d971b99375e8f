// Package feature binds each game to its content shape, judge, validator and turn rules.
package feature

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gosimple/slug"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/puzzle"
	"github.com/rocketscienceinc/matchsync/internal/validator"
)

type Shape string

const (
	ShapePath   Shape = "path"
	ShapeChoice Shape = "choice"
)

const (
	WordGrid   = "word-grid"
	WordLink   = "word-link"
	Quiz       = "quiz"
	ThisOrThat = "this-or-that"
)

type Feature struct {
	Key           string
	Shape         Shape
	TurnThreshold int
	HintBudget    int
	RewardAmount  int
	MinPathLength int

	Judge     puzzle.Judge
	Validator validator.MoveValidator
}

// Budgets is the initial resource allowance of each participant.
func (that Feature) Budgets() map[entity.ResourceKind]int {
	return map[entity.ResourceKind]int{entity.ResourceHint: that.HintBudget}
}

// Settings are the numeric rules of a feature.
type Settings struct {
	TurnThreshold int
	HintBudget    int
	RewardAmount  int
	MinPathLength int
}

// Override replaces some rules of a feature. Nil fields keep the defaults.
type Override struct {
	TurnThreshold *int
	HintBudget    *int
	RewardAmount  *int
	MinPathLength *int
}

var defaults = map[string]Settings{
	WordGrid:   {TurnThreshold: 3, HintBudget: 3, RewardAmount: 50, MinPathLength: 3},
	WordLink:   {TurnThreshold: 3, HintBudget: 3, RewardAmount: 50, MinPathLength: 3},
	Quiz:       {TurnThreshold: 3, HintBudget: 1, RewardAmount: 30},
	ThisOrThat: {TurnThreshold: 5, HintBudget: 0, RewardAmount: 20},
}

var shapes = map[string]Shape{
	WordGrid:   ShapePath,
	WordLink:   ShapePath,
	Quiz:       ShapeChoice,
	ThisOrThat: ShapeChoice,
}

// Normalize turns user-facing names like "Word Grid" into registry keys.
func Normalize(key string) string {
	return slug.Make(key)
}

type Registry struct {
	features map[string]Feature
}

func NewRegistry(overrides map[string]Override) *Registry {
	features := make(map[string]Feature, len(defaults))

	normalized := make(map[string]Override, len(overrides))
	for key, override := range overrides {
		normalized[Normalize(key)] = override
	}

	for key, settings := range defaults {
		settings = merge(settings, normalized[key])
		features[key] = build(key, shapes[key], settings)
	}

	return &Registry{features: features}
}

func (that *Registry) Get(key string) (Feature, error) {
	feature, ok := that.features[Normalize(key)]
	if !ok {
		return Feature{}, fmt.Errorf("%w: %s", apperror.ErrUnknownFeature, key)
	}

	return feature, nil
}

func (that *Registry) Keys() []string {
	return slices.Sorted(maps.Keys(that.features))
}

func build(key string, shape Shape, settings Settings) Feature {
	feature := Feature{
		Key:           key,
		Shape:         shape,
		TurnThreshold: settings.TurnThreshold,
		HintBudget:    settings.HintBudget,
		RewardAmount:  settings.RewardAmount,
		MinPathLength: settings.MinPathLength,
	}

	switch shape {
	case ShapePath:
		feature.Judge = puzzle.NewGridJudge(settings.MinPathLength)
		feature.Validator = validator.NewPath(puzzle.DecodeGrid, settings.MinPathLength)
	case ShapeChoice:
		feature.Judge = puzzle.NewChoiceJudge()
		feature.Validator = validator.NewChoice(puzzle.DecodeOptions)
	}

	return feature
}

// merge applies override to base. Turns and paths need at least one step, budgets and
// rewards may be zero.
func merge(base Settings, override Override) Settings {
	replace(&base.TurnThreshold, override.TurnThreshold, 1)
	replace(&base.HintBudget, override.HintBudget, 0)
	replace(&base.RewardAmount, override.RewardAmount, 0)
	replace(&base.MinPathLength, override.MinPathLength, 1)

	return base
}

func replace(target, value *int, least int) {
	if value != nil && *value >= least {
		*target = *value
	}
}
