package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkpress/inkpress/domain"
)

const (
	KeyBlogView = "blog:view:%s"
	KeyHome     = "blog:home"

	blogTTL = 10 * time.Minute
	homeTTL = 30 * time.Second
)

type blogCache struct {
	client *redis.Client
}

var _ domain.BlogCache = (*blogCache)(nil)

func NewBlogCache(client *redis.Client) *blogCache {
	return &blogCache{
		client,
	}
}

func (c *blogCache) GetHome(ctx context.Context) ([]domain.BlogView, error) {
	data, err := c.client.Get(ctx, KeyHome).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}

	var views []domain.BlogView
	if err = json.Unmarshal(data, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *blogCache) SetHome(ctx context.Context, views []domain.BlogView) error {
	data, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyHome, data, homeTTL).Err()
}

func (c *blogCache) DeleteHome(ctx context.Context) error {
	return c.client.Del(ctx, KeyHome).Err()
}

func (c *blogCache) GetBlog(ctx context.Context, slug string) (domain.BlogView, error) {
	key := fmt.Sprintf(KeyBlogView, slug)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.BlogView{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.BlogView{}, err
	}

	var view domain.BlogView
	if err = json.Unmarshal(data, &view); err != nil {
		return domain.BlogView{}, err
	}
	return view, nil
}

func (c *blogCache) SetBlog(ctx context.Context, view domain.BlogView) error {
	// Never persist a viewer-specific flag.
	view.LikedByViewer = false

	key := fmt.Sprintf(KeyBlogView, view.Slug)
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, blogTTL).Err()
}

func (c *blogCache) DeleteBlog(ctx context.Context, slug string) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyBlogView, slug)).Err()
}
