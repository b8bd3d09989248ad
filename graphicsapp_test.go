package vkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordOrClear(t *testing.T) {
	errNode := errors.New("unknown texture")
	errReset := errors.New("reset failed")
	graph := NewRenderGraph().Add("gui", CommandFunc(func(*CommandBuffer) error { return errNode }))

	t.Run("graph records", func(t *testing.T) {
		var got []Command
		recorded, err := recordOrClear(func(g Command) error {
			got = append(got, g)
			return nil
		}, graph)
		assert.True(t, recorded)
		assert.NoError(t, err)
		assert.Equal(t, []Command{graph}, got)
	})

	t.Run("graph fails", func(t *testing.T) {
		var got []Command
		recorded, err := recordOrClear(func(g Command) error {
			got = append(got, g)
			if g != nil {
				return g.Record(&CommandBuffer{})
			}
			return nil
		}, graph)
		assert.True(t, recorded, "a clear only frame keeps the frame in flight going")
		assert.ErrorIs(t, err, errNode)
		assert.Equal(t, []Command{graph, nil}, got)
	})

	t.Run("nothing records", func(t *testing.T) {
		recorded, err := recordOrClear(func(g Command) error {
			if g != nil {
				return errNode
			}
			return errReset
		}, graph)
		assert.False(t, recorded)
		assert.ErrorIs(t, err, errNode)
		assert.ErrorIs(t, err, errReset)
	})
}
