package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	m       sync.Mutex
	design  *Design
	err     error
	getHits int
}

func (m *mockRepository) GetDesign(context.Context, string) (*Design, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.getHits++
	if m.err != nil {
		return nil, m.err
	}
	return m.design, nil
}

func (m *mockRepository) ListDesigns(context.Context) ([]*Design, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return []*Design{m.design}, nil
}

func (m *mockRepository) hits() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.getHits
}

type mockCache struct {
	m      sync.Mutex
	design *Design
	err    error
}

func (m *mockCache) Get(context.Context, string) (*Design, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.design == nil {
		return nil, ErrCacheMiss
	}
	return m.design, nil
}

func (m *mockCache) Set(_ context.Context, design *Design) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.design = design
	return nil
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.design = nil
	return nil
}

func (m *mockCache) cached() *Design {
	m.m.Lock()
	defer m.m.Unlock()
	return m.design
}

func testDesign() *Design {
	return &Design{
		ID:         "design-1",
		Name:       "Nature Collection",
		PriceRange: "500-2000",
		PageCount:  54,
	}
}

func TestGetDesign_CacheHitSkipsRepository(t *testing.T) {
	repo := &mockRepository{design: testDesign()}
	cache := &mockCache{design: testDesign()}
	svc := NewService(repo, cache)

	design, err := svc.GetDesign(context.Background(), "design-1")

	require.NoError(t, err)
	assert.Equal(t, "Nature Collection", design.Name)
	assert.Zero(t, repo.hits())
}

func TestGetDesign_CacheMissFallsBackToRepository(t *testing.T) {
	repo := &mockRepository{design: testDesign()}
	cache := &mockCache{}
	svc := NewService(repo, cache)

	design, err := svc.GetDesign(context.Background(), "design-1")

	require.NoError(t, err)
	assert.Equal(t, "design-1", design.ID)
	assert.Equal(t, 1, repo.hits())

	// the miss populates the cache in the background
	assert.Eventually(t, func() bool {
		return cache.cached() != nil
	}, time.Second, 5*time.Millisecond)
}

func TestGetDesign_CacheErrorStillServes(t *testing.T) {
	repo := &mockRepository{design: testDesign()}
	cache := &mockCache{err: errors.New("redis down")}
	svc := NewService(repo, cache)

	design, err := svc.GetDesign(context.Background(), "design-1")

	require.NoError(t, err)
	assert.Equal(t, "design-1", design.ID)
}

func TestGetDesign_NotFound(t *testing.T) {
	repo := &mockRepository{err: ErrDesignNotFound}
	svc := NewService(repo, &mockCache{})

	design, err := svc.GetDesign(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrDesignNotFound)
	assert.Nil(t, design)
}

func TestGetDesign_ConcurrentMissesCollapse(t *testing.T) {
	repo := &mockRepository{design: testDesign()}
	svc := NewService(repo, &mockCache{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetDesign(context.Background(), "design-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// singleflight keeps concurrent misses well below one repo call each
	assert.Less(t, repo.hits(), 20)
}
