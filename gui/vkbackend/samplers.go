package vkbackend

import (
	"fmt"

	vkg "github.com/celer/vkgui"
	lru "github.com/hashicorp/golang-lru/v2"
)

// samplerCache shares samplers between textures. Evicted samplers are
// destroyed, so its size must exceed the number of distinct options in use.
type samplerCache struct {
	cache  *lru.Cache[vkg.SamplerOptions, *vkg.Sampler]
	create func(vkg.SamplerOptions) (*vkg.Sampler, error)
}

func newSamplerCache(size int, create func(vkg.SamplerOptions) (*vkg.Sampler, error), destroy func(*vkg.Sampler)) (*samplerCache, error) {
	cache, err := lru.NewWithEvict(size, func(_ vkg.SamplerOptions, s *vkg.Sampler) {
		destroy(s)
	})
	if err != nil {
		return nil, err
	}
	return &samplerCache{cache: cache, create: create}, nil
}

// Get returns the sampler for opts, creating it on first use. The sampler
// is owned by the cache.
func (c *samplerCache) Get(opts vkg.SamplerOptions) (*vkg.Sampler, error) {
	if s, ok := c.cache.Get(opts); ok {
		return s, nil
	}
	s, err := c.create(opts)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	c.cache.Add(opts, s)
	return s, nil
}

func (c *samplerCache) Len() int {
	return c.cache.Len()
}

// Purge destroys every cached sampler.
func (c *samplerCache) Purge() {
	c.cache.Purge()
}
