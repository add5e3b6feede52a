package catalog

import (
	"context"
	"errors"
)

type DesignCache interface {
	Get(ctx context.Context, id string) (*Design, error)
	Set(ctx context.Context, design *Design) error
	Delete(ctx context.Context, id string) error
}

var ErrCacheMiss = errors.New("cache miss")
