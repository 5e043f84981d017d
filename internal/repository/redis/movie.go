package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moviestar/moviestar/domain"
)

const (
	KeyMovie         = "movie:%d"
	KeyRatingSummary = "movie:%d:rating"
	KeyMovieList     = "movies:list:v%d:%s"
	KeyListVersion   = "movies:list:version"

	movieTTL   = 10 * time.Minute
	listTTL    = 5 * time.Minute
	summaryTTL = 10 * time.Minute
)

type movieCache struct {
	client *redis.Client
}

var _ domain.MovieCache = (*movieCache)(nil)

func NewMovieCache(client *redis.Client) *movieCache {
	return &movieCache{
		client,
	}
}

func (c *movieCache) GetMovie(ctx context.Context, id int64) (res domain.Movie, err error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyMovie, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Movie{}, domain.ErrCacheMiss
	}
	if err != nil {
		return domain.Movie{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Movie{}, err
	}
	return res, nil
}

func (c *movieCache) SetMovie(ctx context.Context, m *domain.Movie) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyMovie, m.ID), data, movieTTL).Err()
}

// listVersion returns the current list-namespace version. Missing key means
// version 0; the namespace has simply never been evicted.
func (c *movieCache) listVersion(ctx context.Context) (int64, error) {
	val, err := c.client.Get(ctx, KeyListVersion).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (c *movieCache) GetMovieList(ctx context.Context, key string) ([]domain.Movie, error) {
	version, err := c.listVersion(ctx)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyMovieList, version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var res []domain.Movie
	if err = json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *movieCache) SetMovieList(ctx context.Context, key string, movies []domain.Movie) error {
	version, err := c.listVersion(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyMovieList, version, key), data, listTTL).Err()
}

func (c *movieCache) GetRatingSummary(ctx context.Context, movieID int64) (domain.RatingSummary, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyRatingSummary, movieID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RatingSummary{}, domain.ErrCacheMiss
	}
	if err != nil {
		return domain.RatingSummary{}, err
	}
	var res domain.RatingSummary
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.RatingSummary{}, err
	}
	return res, nil
}

func (c *movieCache) SetRatingSummary(ctx context.Context, movieID int64, s domain.RatingSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyRatingSummary, movieID), data, summaryTTL).Err()
}
