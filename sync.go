package vkg

import (
	"time"

	vk "github.com/vulkan-go/vulkan"
)

type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

// VKCreateFence creates a native fence, optionally already signaled.
func (d *Device) VKCreateFence(signaled bool) (vk.Fence, error) {
	info := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	if signaled {
		info.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	var fence vk.Fence
	if err := vk.Error(vk.CreateFence(d.VKDevice, &info, nil, &fence)); err != nil {
		return vk.NullFence, err
	}
	return fence, nil
}

func (d *Device) VKDestroyFence(f vk.Fence) {
	vk.DestroyFence(d.VKDevice, f, nil)
}

// CreateFence creates an unsignaled fence.
func (d *Device) CreateFence() (*Fence, error) {
	fence, err := d.VKCreateFence(false)
	if err != nil {
		return nil, err
	}
	return &Fence{Device: d, VKFence: fence}, nil
}

// WaitForFences waits until all (or any) fences are signaled or the
// timeout elapses. A timeout <= 0 waits forever.
func (d *Device) WaitForFences(waitForAll bool, timeout time.Duration, fences ...*Fence) error {
	f := make([]vk.Fence, len(fences))
	for i := range fences {
		f[i] = fences[i].VKFence
	}
	return d.waitForFences(waitForAll, fenceTimeout(timeout), f...)
}

func fenceTimeout(timeout time.Duration) uint64 {
	if timeout <= 0 {
		return vk.MaxUint64
	}
	return uint64(timeout.Nanoseconds())
}

func (d *Device) waitForFences(waitForAll bool, timeout uint64, fences ...vk.Fence) error {
	return vk.Error(vk.WaitForFences(d.VKDevice, uint32(len(fences)), fences, vkBool(waitForAll), timeout))
}

func (d *Device) resetFences(fences ...vk.Fence) error {
	return vk.Error(vk.ResetFences(d.VKDevice, uint32(len(fences)), fences))
}

// Wait blocks until the fence is signaled.
func (f *Fence) Wait() error {
	return f.Device.WaitForFences(true, 0, f)
}

func (f *Fence) Destroy() {
	f.Device.VKDestroyFence(f.VKFence)
}

// VKCreateSemaphore creates a native semaphore.
func (d *Device) VKCreateSemaphore() (vk.Semaphore, error) {
	info := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	var sema vk.Semaphore
	err := vk.Error(vk.CreateSemaphore(d.VKDevice, &info, nil, &sema))
	return sema, err
}

func (d *Device) VKDestroySemaphore(s vk.Semaphore) {
	vk.DestroySemaphore(d.VKDevice, s, nil)
}
