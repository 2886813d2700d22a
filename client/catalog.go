package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/liftlog/liftlog-go/schema"
)

// The catalog barely changes, so listings are cached with a TTL to keep
// group and exercise browsing cheap. The endpoints still require
// authentication, so cache misses benefit from transparent renewal like
// every other call.

const (
	cacheKeyGroups      = "muscle-groups"
	cacheKeyExercisePfx = "exercises_"
)

// MuscleGroups lists all catalog groups.
func (c *Client) MuscleGroups(ctx context.Context) ([]schema.MuscleGroup, error) {
	if cached, ok := c.catalog.Get(cacheKeyGroups); ok {
		return cached.([]schema.MuscleGroup), nil
	}
	var out []schema.MuscleGroup
	if err := c.do(ctx, http.MethodGet, "/muscle-groups", nil, &out); err != nil {
		return nil, err
	}
	c.catalog.Set(cacheKeyGroups, out, gocache.DefaultExpiration)
	return out, nil
}

// Exercises lists the exercises of one muscle group.
func (c *Client) Exercises(ctx context.Context, groupID uuid.UUID) ([]schema.Exercise, error) {
	key := cacheKeyExercisePfx + groupID.String()
	if cached, ok := c.catalog.Get(key); ok {
		return cached.([]schema.Exercise), nil
	}
	var out []schema.Exercise
	if err := c.do(ctx, http.MethodGet, "/muscle-groups/"+groupID.String()+"/exercises", nil, &out); err != nil {
		return nil, err
	}
	c.catalog.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}
