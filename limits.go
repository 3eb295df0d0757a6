package scew

import (
	"cmp"
	"fmt"
)

const (
	defaultMaxDepth       = 256
	defaultMaxAttrs       = 256
	defaultMaxContentSize = 64 << 20
)

// buildLimits bound the resources a single parse may commit to the tree:
// nesting depth, attributes on one element and total content bytes.
// Exceeding one is this layer's allocation failure.
type buildLimits struct {
	maxDepth       int
	maxAttrs       int
	maxContentSize int
}

func resolveBuildLimits(maxDepth, maxAttrs, maxContentSize int) (buildLimits, error) {
	if maxDepth < 0 {
		return buildLimits{}, fmt.Errorf("max depth must be >= 0")
	}
	if maxAttrs < 0 {
		return buildLimits{}, fmt.Errorf("max attributes must be >= 0")
	}
	if maxContentSize < 0 {
		return buildLimits{}, fmt.Errorf("max content size must be >= 0")
	}
	return buildLimits{
		maxDepth:       defaultLimit(maxDepth, defaultMaxDepth),
		maxAttrs:       defaultLimit(maxAttrs, defaultMaxAttrs),
		maxContentSize: defaultLimit(maxContentSize, defaultMaxContentSize),
	}, nil
}

func defaultLimit(value, fallback int) int {
	return cmp.Or(value, fallback)
}
