package vkg

import (
	"fmt"
	"slices"

	vk "github.com/vulkan-go/vulkan"
)

type VKPresentModes []vk.PresentMode

// Has reports whether mode is supported.
func (v VKPresentModes) Has(mode vk.PresentMode) bool {
	return slices.Contains(v, mode)
}

type VKSurfaceFormats []vk.SurfaceFormat

// Find returns the first format accepted by f.
func (v VKSurfaceFormats) Find(f func(f vk.SurfaceFormat) bool) (vk.SurfaceFormat, bool) {
	for _, s := range v {
		s.Deref()
		if f(s) {
			return s, true
		}
	}
	return vk.SurfaceFormat{}, false
}

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

// IsDiscrete reports whether this is a discrete GPU.
func (p *PhysicalDevice) IsDiscrete() bool {
	return p.VKPhysicalDeviceProperties.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu
}

// Limits returns the device limits.
func (p *PhysicalDevice) Limits() vk.PhysicalDeviceLimits {
	limits := p.VKPhysicalDeviceProperties.Limits
	limits.Deref()
	return limits
}

func (p *PhysicalDevice) GetSurfacePresentModes(surface vk.Surface) (VKPresentModes, error) {
	var count uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, nil)); err != nil {
		return nil, err
	}
	modes := make([]vk.PresentMode, count)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, modes)); err != nil {
		return nil, err
	}
	return modes, nil
}

func (p *PhysicalDevice) GetSurfaceFormats(surface vk.Surface) (VKSurfaceFormats, error) {
	var count uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, nil)); err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, count)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, formats)); err != nil {
		return nil, err
	}
	return formats, nil
}

func (p *PhysicalDevice) GetSurfaceCapabilities(surface vk.Surface) (*vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps)); err != nil {
		return nil, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	return &caps, nil
}

func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, nil)
	if count == 0 {
		return nil, nil
	}

	queues := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, queues)

	ret := make(QueueFamilySlice, count)
	for i, queue := range queues {
		queue.Deref()
		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: queue}
	}
	return ret, nil
}

type CreateDeviceOptions struct {
	EnabledExtensions []string
	EnabledLayers     []string
}

// CreateLogicalDeviceWithOptions creates a device with one queue for each
// distinct family of qfs.
func (p *PhysicalDevice) CreateLogicalDeviceWithOptions(qfs QueueFamilySlice, options *CreateDeviceOptions) (*Device, error) {
	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, 0, len(qfs))
	seen := make(map[int]bool)
	for _, q := range qfs {
		if seen[q.Index] {
			continue
		}
		seen[q.Index] = true
		queueCreateInfos = append(queueCreateInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(q.Index),
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}

	deviceFeatures := p.VKPhysicalDeviceFeatures()

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueCreateInfos)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{deviceFeatures},
	}

	if options != nil {
		if len(options.EnabledExtensions) > 0 {
			deviceCreateInfo.EnabledExtensionCount = uint32(len(options.EnabledExtensions))
			deviceCreateInfo.PpEnabledExtensionNames = safeStrings(options.EnabledExtensions)
		}
		if len(options.EnabledLayers) > 0 {
			deviceCreateInfo.EnabledLayerCount = uint32(len(options.EnabledLayers))
			deviceCreateInfo.PpEnabledLayerNames = safeStrings(options.EnabledLayers)
		}
	}

	var ldevice vk.Device
	if err := vk.Error(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice)); err != nil {
		return nil, fmt.Errorf("unable to create device on %s: %w", p, err)
	}

	Logger().Info("logical device created", "device", p.DeviceName, "queues", len(queueCreateInfos))
	return &Device{PhysicalDevice: p, VKDevice: ldevice}, nil
}

func (p *PhysicalDevice) VKPhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	var deviceFeatures vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &deviceFeatures)
	return deviceFeatures
}

func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
	memoryProperties.Deref()
	return memoryProperties
}

// MemoryTypes lists the memory types of the device in index order.
func (p *PhysicalDevice) MemoryTypes() []vk.MemoryType {
	mp := p.VKPhysicalDeviceMemoryProperties()
	ret := make([]vk.MemoryType, 0, mp.MemoryTypeCount)
	for i := uint32(0); i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]
		mt.Deref()
		ret = append(ret, mt)
	}
	return ret
}

// FindMemoryType returns the index of the first memory type allowed by
// memoryTypeBits which has all the requested properties.
func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, error) {
	index, ok := findMemoryType(p.MemoryTypes(), memoryTypeBits, properties)
	if !ok {
		return 0, fmt.Errorf("%w: type bits %#x, properties %#x", ErrNoMemoryType, memoryTypeBits, properties)
	}
	return index, nil
}

func findMemoryType(types []vk.MemoryType, memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, bool) {
	for i, mt := range types {
		if memoryTypeBits&(1<<uint(i)) != 0 &&
			vk.MemoryPropertyFlagBits(mt.PropertyFlags)&properties == properties {
			return uint32(i), true
		}
	}
	return 0, false
}

// IsHostCoherent reports whether memory type index needs no explicit flush.
func (p *PhysicalDevice) IsHostCoherent(index uint32) bool {
	types := p.MemoryTypes()
	if int(index) >= len(types) {
		return false
	}
	return vk.MemoryPropertyFlagBits(types[index].PropertyFlags)&vk.MemoryPropertyHostCoherentBit != 0
}

func (p *PhysicalDevice) SupportedExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil)); err != nil {
		return nil, err
	}
	ext := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, ext)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, e := range ext {
		e.Deref()
		names = append(names, vk.ToString(e.ExtensionName[:]))
	}
	return names, nil
}

// PickPhysicalDevice returns the first discrete device having a queue able
// to render and present to surface, falling back to any such device.
func PickPhysicalDevice(devices []*PhysicalDevice, surface vk.Surface) (*PhysicalDevice, error) {
	var fallback *PhysicalDevice
	for _, d := range devices {
		families, err := d.QueueFamilies()
		if err != nil {
			return nil, err
		}
		if len(families.FilterGraphicsAndPresent(surface)) == 0 {
			continue
		}
		if d.IsDiscrete() {
			return d, nil
		}
		if fallback == nil {
			fallback = d
		}
	}
	if fallback == nil {
		return nil, ErrNoDevice
	}
	return fallback, nil
}
