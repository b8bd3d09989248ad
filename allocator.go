package vkg

import (
	"fmt"
	"sort"
)

// Allocation is a range of a resource pool.
type Allocation struct {
	Offset uint64
	Size   uint64
	// Object is the resource occupying the range.
	Object Destroyer
}

func (a *Allocation) String() string {
	return fmt.Sprintf("[%d %d]", a.Offset, a.Size)
}

// IAllocator hands out ranges of a fixed size block.
type IAllocator interface {
	Allocate(size uint64, align uint64) *Allocation
	Free(a *Allocation)
	// Allocations returns the live allocations ordered by offset.
	Allocations() []*Allocation
	// Used returns the number of allocated bytes.
	Used() uint64
}

// LinearAllocator is a first fit allocator keeping its allocations sorted
// by offset.
type LinearAllocator struct {
	Size   uint64
	allocs []*Allocation
}

func makeAlignUp(a uint64, align uint64) uint64 {
	if align <= 1 {
		return a
	}
	if m := a % align; m != 0 {
		return a - m + align
	}
	return a
}

func (p *LinearAllocator) Free(fa *Allocation) {
	for i, a := range p.allocs {
		if a == fa {
			p.allocs = append(p.allocs[:i], p.allocs[i+1:]...)
			return
		}
	}
}

// Allocate returns the first aligned gap holding size bytes, or nil.
func (p *LinearAllocator) Allocate(size uint64, align uint64) *Allocation {
	if size == 0 || size > p.Size {
		return nil
	}

	start := uint64(0)
	for i, a := range p.allocs {
		if a.Offset >= start && a.Offset-start >= size {
			return p.insert(i, start, size)
		}
		start = makeAlignUp(a.Offset+a.Size, align)
	}
	if start <= p.Size && p.Size-start >= size {
		return p.insert(len(p.allocs), start, size)
	}
	return nil
}

func (p *LinearAllocator) insert(i int, offset, size uint64) *Allocation {
	na := &Allocation{Offset: offset, Size: size}
	p.allocs = append(p.allocs, nil)
	copy(p.allocs[i+1:], p.allocs[i:])
	p.allocs[i] = na
	return na
}

func (p *LinearAllocator) Allocations() []*Allocation {
	ret := append([]*Allocation(nil), p.allocs...)
	sort.Slice(ret, func(i, j int) bool { return ret[i].Offset < ret[j].Offset })
	return ret
}

func (p *LinearAllocator) Used() uint64 {
	var n uint64
	for _, a := range p.allocs {
		n += a.Size
	}
	return n
}

func (p *LinearAllocator) String() string {
	return fmt.Sprintf("%v", p.allocs)
}
