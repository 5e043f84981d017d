package redis

import (
	"context"
	"fmt"

	"github.com/moviestar/moviestar/domain"
)

// eviction describes what a mutation kind invalidates: per-movie keys
// (deleted directly) and optionally the whole list namespace (evicted by
// bumping the version counter, old keys expire on their own).
type eviction struct {
	movieKeys []string
	bumpLists bool
}

// evictions is the single place coupling writes to cached aggregates. A new
// cached key must be wired in here or it will go stale.
var evictions = map[domain.Mutation]eviction{
	domain.MutationRatingWrite:  {movieKeys: []string{KeyRatingSummary}},
	domain.MutationMovieWrite:   {movieKeys: []string{KeyMovie, KeyRatingSummary}, bumpLists: true},
	domain.MutationDirectorLink: {movieKeys: []string{KeyMovie}, bumpLists: true},
}

func (c *movieCache) Invalidate(ctx context.Context, m domain.Mutation, movieID int64) error {
	ev, ok := evictions[m]
	if !ok {
		return fmt.Errorf("no eviction rule for mutation %v", m)
	}

	keys := make([]string, 0, len(ev.movieKeys))
	for _, pattern := range ev.movieKeys {
		keys = append(keys, fmt.Sprintf(pattern, movieID))
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}

	if ev.bumpLists {
		if err := c.client.Incr(ctx, KeyListVersion).Err(); err != nil {
			return err
		}
	}
	return nil
}
