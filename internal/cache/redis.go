package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/emrgen/wiki/internal/compress"
	redis "github.com/redis/go-redis/v9"
)

func htmlKey(revisionID uint) string {
	return "article:html:" + strconv.FormatUint(uint64(revisionID), 10)
}

var _ HTMLCache = (*Redis)(nil)

type Redis struct {
	client  *redis.Client
	encoder compress.Compress
}

func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		Protocol: 2, // Connection protocol
	})

	return &Redis{client: client, encoder: compress.NewGZip()}
}

// Ping checks the connection to redis.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetHTML(ctx context.Context, revisionID uint) (string, bool, error) {
	res := r.client.Get(ctx, htmlKey(revisionID))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return "", false, nil
		}
		return "", false, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return "", false, err
	}

	html, err := r.encoder.Decode(buf)
	if err != nil {
		return "", false, err
	}

	return string(html), true, nil
}

func (r *Redis) SetHTML(ctx context.Context, revisionID uint, html string) error {
	encoded, err := r.encoder.Encode([]byte(html))
	if err != nil {
		return err
	}

	return r.client.Set(ctx, htmlKey(revisionID), encoded, HTMLTTL).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
