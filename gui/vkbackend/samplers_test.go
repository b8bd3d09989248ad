package vkbackend

import (
	"errors"
	"testing"

	vkg "github.com/celer/vkgui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

type samplerCounter struct {
	created   int
	destroyed []vkg.SamplerOptions
	fail      bool
}

func (c *samplerCounter) create(opts vkg.SamplerOptions) (*vkg.Sampler, error) {
	if c.fail {
		return nil, errors.New("out of memory")
	}
	c.created++
	return &vkg.Sampler{Options: opts}, nil
}

func (c *samplerCounter) destroy(s *vkg.Sampler) {
	c.destroyed = append(c.destroyed, s.Options)
}

func TestSamplerCacheReuses(t *testing.T) {
	c := &samplerCounter{}
	cache, err := newSamplerCache(4, c.create, c.destroy)
	require.NoError(t, err)

	a, err := cache.Get(vkg.LinearClampSampler)
	require.NoError(t, err)
	b, err := cache.Get(vkg.LinearClampSampler)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, c.created)
	assert.Equal(t, 1, cache.Len())
}

func TestSamplerCacheEvictDestroys(t *testing.T) {
	c := &samplerCounter{}
	cache, err := newSamplerCache(1, c.create, c.destroy)
	require.NoError(t, err)

	nearest := vkg.LinearClampSampler
	nearest.MagFilter = vk.FilterNearest

	_, err = cache.Get(vkg.LinearClampSampler)
	require.NoError(t, err)
	_, err = cache.Get(nearest)
	require.NoError(t, err)

	assert.Equal(t, []vkg.SamplerOptions{vkg.LinearClampSampler}, c.destroyed)

	cache.Purge()
	assert.Equal(t, []vkg.SamplerOptions{vkg.LinearClampSampler, nearest}, c.destroyed)
	assert.Zero(t, cache.Len())
}

func TestSamplerCacheCreateError(t *testing.T) {
	c := &samplerCounter{fail: true}
	cache, err := newSamplerCache(2, c.create, c.destroy)
	require.NoError(t, err)

	_, err = cache.Get(vkg.LinearClampSampler)
	assert.ErrorContains(t, err, "out of memory")
	assert.Zero(t, cache.Len())
}
