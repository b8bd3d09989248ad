package vkg

import (
	"context"
	"fmt"
	"log/slog"

	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

const (
	StagingPoolName = "staging"
	// DefaultStagingPoolSize is the size of the staging pool allocated by
	// EnsureStagingPool.
	DefaultStagingPoolSize = 32 * units.MiB
)

// A pool of device memory from which images are sub allocated
type ImageResourcePool struct {
	Device           *Device
	Name             string
	Usage            vk.ImageUsageFlagBits
	Sharing          vk.SharingMode
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        IAllocator
	Memory           *DeviceMemory
	NeedsStaging     bool
	ResourceManager  *ResourceManager
}

// A pool of device memory from which buffers are sub allocated. Host
// visible pools stay mapped for their whole life.
type BufferResourcePool struct {
	Device           *Device
	Name             string
	Usage            vk.BufferUsageFlagBits
	Sharing          vk.SharingMode
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        IAllocator
	Memory           *DeviceMemory
	NeedsStaging     bool
	ResourceManager  *ResourceManager
}

func needsStaging(mprops vk.MemoryPropertyFlagBits) bool {
	// FIXME integrated devices expose device local memory which is also host visible
	return mprops&vk.MemoryPropertyDeviceLocalBit != 0 && mprops&vk.MemoryPropertyHostVisibleBit == 0
}

func (p *ImageResourcePool) AllocateImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*ImageResource, error) {
	i, err := p.Device.CreateImageWithOptions(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := i.VKMemoryRequirements()

	allocation := p.Allocator.Allocate(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		i.Destroy()
		return nil, fmt.Errorf("image pool %q: %w", p.Name, ErrPoolExhausted)
	}

	err = vk.Error(vk.BindImageMemory(p.Device.VKDevice, i.VKImage, p.Memory.VKDeviceMemory, vk.DeviceSize(allocation.Offset)))
	if err != nil {
		p.Allocator.Free(allocation)
		i.Destroy()
		return nil, err
	}

	img := &ImageResource{
		Image:        *i,
		Size:         uint64(mr.Size),
		Extent:       extent,
		Allocation:   allocation,
		ResourcePool: p,
	}
	allocation.Object = img

	return img, nil
}

func (p *ImageResourcePool) LogDetails() {
	Logger().Debug("image pool", "name", p.Name, "size", units.BytesSize(float64(p.Size)),
		"used", units.BytesSize(float64(p.Allocator.Used())))
	logAllocations(p.Allocator)
}

// Destroy frees every image still allocated from this pool and then the
// pool memory.
func (p *ImageResourcePool) Destroy() {
	if p.Allocator != nil {
		destroyAllocations(p.Allocator)
		p.Allocator = nil
	}
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	if p.ResourceManager != nil {
		delete(p.ResourceManager.imagePools, p.Name)
	}
}

// AllocateFor allocates a buffer sized and flagged for the given vertex or
// index data.
func (p *BufferResourcePool) AllocateFor(src any) (*BufferResource, error) {
	switch s := src.(type) {
	case VertexSource:
		return p.AllocateBuffer(uint64(len(s.Bytes())), vk.BufferUsageVertexBufferBit)
	case IndexSource:
		return p.AllocateBuffer(uint64(len(s.Bytes())), vk.BufferUsageIndexBufferBit)
	}
	return nil, fmt.Errorf("unknown buffer object type %T", src)
}

func (p *BufferResourcePool) AllocateBuffer(size uint64, usage vk.BufferUsageFlagBits) (*BufferResource, error) {
	if p.NeedsStaging {
		usage |= vk.BufferUsageTransferDstBit
	}

	buffer, err := p.Device.CreateBufferWithOptions(size, usage, p.Sharing)
	if err != nil {
		return nil, err
	}

	mr := buffer.VKMemoryRequirements()

	allocation := p.Allocator.Allocate(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		buffer.Destroy()
		return nil, fmt.Errorf("buffer pool %q: %w", p.Name, ErrPoolExhausted)
	}

	if err := buffer.Bind(p.Memory, allocation.Offset); err != nil {
		p.Allocator.Free(allocation)
		buffer.Destroy()
		return nil, err
	}

	ret := &BufferResource{
		Buffer:       *buffer,
		Allocation:   allocation,
		ResourcePool: p,
	}
	allocation.Object = ret

	return ret, nil
}

func (p *BufferResourcePool) LogDetails() {
	Logger().Debug("buffer pool", "name", p.Name, "size", units.BytesSize(float64(p.Size)),
		"used", units.BytesSize(float64(p.Allocator.Used())), "staged", p.NeedsStaging)
	logAllocations(p.Allocator)
}

// Destroy frees every buffer still allocated from this pool and then the
// pool memory.
func (p *BufferResourcePool) Destroy() {
	if p.Allocator != nil {
		destroyAllocations(p.Allocator)
		p.Allocator = nil
	}
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	if p.ResourceManager != nil {
		delete(p.ResourceManager.bufferPools, p.Name)
	}
}

func destroyAllocations(a IAllocator) {
	for _, alloc := range a.Allocations() {
		if alloc.Object != nil {
			alloc.Object.Destroy()
		} else {
			a.Free(alloc)
		}
	}
}

func logAllocations(a IAllocator) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, alloc := range a.Allocations() {
		l.Debug("  allocation", "offset", alloc.Offset, "size", units.BytesSize(float64(alloc.Size)), "object", alloc.Object)
	}
}

// ResourceManager owns named pools of device memory for buffers and images
type ResourceManager struct {
	Device      *Device
	bufferPools map[string]*BufferResourcePool
	imagePools  map[string]*ImageResourcePool
}

func (d *Device) CreateResourceManager() *ResourceManager {
	return &ResourceManager{
		Device:      d,
		bufferPools: make(map[string]*BufferResourcePool),
		imagePools:  make(map[string]*ImageResourcePool),
	}
}

func (r *ResourceManager) GetStagingPool() *BufferResourcePool {
	return r.bufferPools[StagingPoolName]
}

// EnsureStagingPool returns the staging pool, allocating one of
// DefaultStagingPoolSize when there is none yet.
func (r *ResourceManager) EnsureStagingPool() (*BufferResourcePool, error) {
	if p := r.GetStagingPool(); p != nil {
		return p, nil
	}
	return r.AllocateStagingPool(DefaultStagingPoolSize)
}

func (r *ResourceManager) AllocateDeviceTexturePool(name string, size uint64) (*ImageResourcePool, error) {
	return r.AllocateImagePoolWithOptions(name, size, vk.MemoryPropertyDeviceLocalBit, vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit, vk.SharingModeExclusive)
}

func (r *ResourceManager) AllocateImagePoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.ImageUsageFlagBits, sharing vk.SharingMode) (*ImageResourcePool, error) {
	if _, ok := r.imagePools[name]; ok {
		return nil, fmt.Errorf("image pool %q already exists", name)
	}

	p := &ImageResourcePool{
		Device:           r.Device,
		Name:             name,
		Usage:            usage,
		Sharing:          sharing,
		MemoryProperties: mprops,
		Size:             size,
		Allocator:        &LinearAllocator{Size: size},
		NeedsStaging:     needsStaging(mprops),
		ResourceManager:  r,
	}

	if p.NeedsStaging {
		usage |= vk.ImageUsageTransferDstBit
	}

	// A throwaway image tells us which memory types images of this usage accept
	probe, err := r.Device.CreateImageWithOptions(vk.Extent2D{Width: 16, Height: 16}, vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal, usage)
	if err != nil {
		return nil, err
	}
	mr := probe.VKMemoryRequirements()
	probe.Destroy()

	memory, err := r.Device.Allocate(int(size), mr.MemoryTypeBits, mprops)
	if err != nil {
		return nil, fmt.Errorf("image pool %q: %w", name, err)
	}
	p.Memory = memory

	r.imagePools[name] = p

	return p, nil
}

func (r *ResourceManager) AllocateStagingPool(size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(StagingPoolName, size, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, vk.BufferUsageTransferSrcBit, vk.SharingModeExclusive)
}

func (r *ResourceManager) AllocateHostVertexAndIndexBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit, vk.SharingModeExclusive)
}

// AllocateDeviceVertexAndIndexBufferPool allocates a pool in device local
// memory. Its buffers are filled with BufferResource.Stage.
func (r *ResourceManager) AllocateDeviceVertexAndIndexBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size, vk.MemoryPropertyDeviceLocalBit, vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit, vk.SharingModeExclusive)
}

func (r *ResourceManager) AllocateBufferPoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.BufferUsageFlagBits, sharing vk.SharingMode) (*BufferResourcePool, error) {
	if _, ok := r.bufferPools[name]; ok {
		return nil, fmt.Errorf("buffer pool %q already exists", name)
	}

	p := &BufferResourcePool{
		Device:           r.Device,
		Name:             name,
		Usage:            usage,
		Sharing:          sharing,
		MemoryProperties: mprops,
		Size:             size,
		Allocator:        &LinearAllocator{Size: size},
		NeedsStaging:     needsStaging(mprops),
		ResourceManager:  r,
	}

	if p.NeedsStaging {
		usage |= vk.BufferUsageTransferDstBit
	}

	probe, err := r.Device.CreateBufferWithOptions(size, usage, sharing)
	if err != nil {
		return nil, err
	}
	mr := probe.VKMemoryRequirements()
	probe.Destroy()

	memory, err := r.Device.Allocate(int(size), mr.MemoryTypeBits, mprops)
	if err != nil {
		return nil, fmt.Errorf("buffer pool %q: %w", name, err)
	}
	p.Memory = memory

	if mprops&vk.MemoryPropertyHostVisibleBit != 0 {
		if _, err := memory.Map(); err != nil {
			memory.Destroy()
			return nil, fmt.Errorf("buffer pool %q: %w", name, err)
		}
	}

	r.bufferPools[name] = p

	return p, nil
}

// LogDetails logs every pool and its allocations at debug level.
func (r *ResourceManager) LogDetails() {
	for _, pool := range r.bufferPools {
		pool.LogDetails()
	}
	for _, pool := range r.imagePools {
		pool.LogDetails()
	}
}

// Destroy releases every pool. The staging pool goes last since other
// pools may still hold staging buffers from it.
func (r *ResourceManager) Destroy() {
	for _, p := range r.imagePools {
		p.Destroy()
	}
	for name, p := range r.bufferPools {
		if name != StagingPoolName {
			p.Destroy()
		}
	}
	if p := r.GetStagingPool(); p != nil {
		p.Destroy()
	}
}
