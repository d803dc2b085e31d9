// Package session holds server-side login sessions referenced by the
// session_id cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Data struct {
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Store interface {
	Set(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
}
