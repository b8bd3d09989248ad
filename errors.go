package vkg

import "errors"

var (
	// ErrNoDevice is returned when no physical device can drive the surface.
	ErrNoDevice = errors.New("vkg: no suitable device found")

	// ErrNoMemoryType is returned when no memory type satisfies a request.
	ErrNoMemoryType = errors.New("vkg: no matching memory type found")

	// ErrPoolExhausted is returned when a resource pool has no room left.
	ErrPoolExhausted = errors.New("vkg: insufficient storage space in resource pool")

	// ErrNoStagingPool is returned when a device local resource is staged
	// before AllocateStagingPool was called.
	ErrNoStagingPool = errors.New("vkg: no staging pool has been allocated")

	// ErrNotPrepared is returned when drawing before PrepareToDraw.
	ErrNotPrepared = errors.New("vkg: graphics app is not prepared to draw")
)
