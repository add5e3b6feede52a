package catalog

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"
)

type Service struct {
	repo  DesignRepository
	cache DesignCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo DesignRepository, cache DesignCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// GetDesign reads through the cache; concurrent misses for the same design
// collapse into a single repository call.
func (s *Service) GetDesign(ctx context.Context, id string) (*Design, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {

		design, err := s.cache.Get(ctx, id)
		if err == nil {
			return design, nil // design is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		design, errGet := s.repo.GetDesign(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), design)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return design, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*Design), nil
}

func (s *Service) ListDesigns(ctx context.Context) ([]*Design, error) {
	return s.repo.ListDesigns(ctx)
}
