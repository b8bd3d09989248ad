package gui

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lin "github.com/xlab/linmath"
)

func clip(x0, y0, x1, y1 float32) Rect[float32] {
	return Rect[float32]{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

func stream(lists ...DrawList) *DrawData {
	return &DrawData{
		DisplaySize:      Vec2{800, 600},
		FramebufferScale: Vec2{1, 1},
		Lists:            lists,
	}
}

func TestRecordEmptyStream(t *testing.T) {
	b, gpu, _, _ := newTestBridge(t)
	defer b.Destroy()

	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))
	assert.Empty(t, cmd.ops)
	assert.Empty(t, gpu.buffers)
	assert.Equal(t, FrameStats{}, b.LastFrameStats())
}

func TestRecordCallbacksWithoutIndices(t *testing.T) {
	b, gpu, _, fe := newTestBridge(t)
	defer b.Destroy()

	var calls []int
	fe.next = stream(DrawList{Commands: []DrawCmd{
		{Callback: func() { calls = append(calls, 1) }},
		{Texture: fe.fontID},
		{Callback: func() { calls = append(calls, 2) }},
	}})
	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))
	assert.Equal(t, []int{1, 2}, calls)
	assert.Empty(t, cmd.ops)
	assert.Empty(t, gpu.buffers)
	assert.Equal(t, 2, b.LastFrameStats().Callbacks)
}

func TestRecordBatchesInOrder(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	fe.next = stream(
		quadList(fe.fontID,
			clip(0, 0, 100, 100),
			clip(-10, -20, 100, 50),
			clip(700, 500, 900, 700),
		),
		quadList(fe.fontID,
			clip(50, 60, 70, 80),
			clip(10.5, 10.5, 20.25, 30.75),
		),
	)

	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))

	assert.Equal(t, []string{
		"pipeline", "viewport", "push", "vertex", "index", "texture",
		"scissor", "draw",
		"scissor", "draw",
		"scissor", "draw",
		"scissor", "draw",
		"scissor", "draw",
	}, cmd.ops)

	assert.Equal(t, []Rect[int32]{
		{0, 0, 100, 100},
		{0, 0, 100, 50},
		{700, 500, 800, 600},
		{50, 60, 70, 80},
		{10, 10, 21, 31},
	}, cmd.scissors)

	assert.Equal(t, [][3]int{
		{6, 0, 0},
		{6, 6, 0},
		{6, 12, 0},
		{6, 18, 4},
		{6, 24, 4},
	}, cmd.draws)

	assert.Equal(t, [][2]float32{{800, 600}}, cmd.viewports)

	stats := b.LastFrameStats()
	assert.Equal(t, 5, stats.Draws)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 2, stats.Lists)
	assert.Equal(t, 160, stats.VertexBytes)
	assert.Equal(t, 60, stats.IndexBytes)
}

func TestRecordSkipsEmptyAndOffscreenBatches(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	list := quadList(fe.fontID,
		clip(900, 0, 1000, 100),
		clip(0, 0, 10, 10),
		clip(0, -50, 800, 0),
		clip(20, 20, 10, 30),
		clip(1, 2, 3, 4),
	)
	list.Commands[1].ElementCount = 0
	fe.next = stream(list)

	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))

	require.Len(t, cmd.draws, 1)
	assert.Equal(t, [3]int{6, 18, 0}, cmd.draws[0], "skipped batches still advance the index offset")
	assert.Equal(t, []Rect[int32]{{1, 2, 3, 4}}, cmd.scissors)
	assert.Equal(t, 4, b.LastFrameStats().Skipped)
}

func TestRecordAllBatchesOffscreen(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	fe.next = stream(quadList(fe.fontID, clip(-100, -100, -1, -1), clip(800, 600, 900, 700)))

	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))
	assert.Empty(t, cmd.ops)
	assert.Equal(t, 2, b.LastFrameStats().Skipped)
}

func TestRecordFramebufferScale(t *testing.T) {
	b, _, win, fe := newTestBridge(t)
	defer b.Destroy()
	win.scale = 2

	require.NoError(t, b.Record(&fakeCmd{}))
	in := fe.frames[len(fe.frames)-1]
	assert.Equal(t, Vec2{800, 600}, in.DisplaySize)
	assert.Equal(t, Vec2{2, 2}, in.FramebufferScale)

	data := stream(quadList(fe.fontID, clip(10, 10, 500, 400)))
	data.FramebufferScale = Vec2{2, 2}
	fe.next = data

	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))
	assert.Equal(t, []Rect[int32]{{20, 20, 1000, 800}}, cmd.scissors)
	assert.Equal(t, [][2]float32{{1600, 1200}}, cmd.viewports)
}

func TestRecordDisplayPos(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	data := stream(quadList(fe.fontID, clip(110, 220, 150, 260)))
	data.DisplayPos = Vec2{100, 200}
	fe.next = data

	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))
	assert.Equal(t, []Rect[int32]{{10, 20, 50, 60}}, cmd.scissors)
}

func TestRecordUploadsVertexAndIndexData(t *testing.T) {
	b, gpu, _, fe := newTestBridge(t)
	defer b.Destroy()

	l1 := quadList(fe.fontID, clip(0, 0, 10, 10))
	l2 := quadList(fe.fontID, clip(0, 0, 10, 10))
	for i := range l1.Vertices {
		l1.Vertices[i] = 1
		l2.Vertices[i] = 2
	}
	for i := range l1.Indices {
		l1.Indices[i] = 3
		l2.Indices[i] = 4
	}
	fe.next = stream(l1, l2)
	require.NoError(t, b.Record(&fakeCmd{}))

	require.Len(t, gpu.buffers, 2)
	vb, ib := gpu.buffers[0], gpu.buffers[1]
	assert.Equal(t, "vertexBuffer", vb.name)
	assert.Equal(t, "indexBuffer", ib.name)
	assert.Equal(t, append(bytes.Repeat([]byte{1}, 80), bytes.Repeat([]byte{2}, 80)...), vb.data[:160])
	assert.Equal(t, append(bytes.Repeat([]byte{3}, 12), bytes.Repeat([]byte{4}, 12)...), ib.data[:24])
	assert.Equal(t, 1, vb.flushes)
	assert.Equal(t, 1, ib.flushes)
}

func TestRecordBuffersPerFrameInFlight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialVertexBuffer = "256"
	cfg.InitialIndexBuffer = "64"
	b, gpu, win, fe := newTestBridge(t, WithConfig(cfg))
	defer b.Destroy()
	require.Equal(t, 2, win.frames)

	record := func(quads int) {
		lists := make([]DrawList, quads)
		for i := range lists {
			lists[i] = quadList(fe.fontID, clip(0, 0, 10, 10))
		}
		fe.next = stream(lists...)
		require.NoError(t, b.Record(&fakeCmd{}))
	}

	record(1)
	record(1)
	require.Len(t, gpu.buffers, 4, "one vertex and one index buffer per frame in flight")
	assert.Equal(t, 256, gpu.buffers[0].Cap())
	assert.Equal(t, 64, gpu.buffers[1].Cap())

	// 10 quads need 800 vertex bytes and 120 index bytes in slot 0
	record(10)
	require.Len(t, gpu.buffers, 6)
	assert.Equal(t, 1, gpu.buffers[0].destroyed)
	assert.Equal(t, 1, gpu.buffers[1].destroyed)
	assert.Equal(t, 1024, gpu.buffers[4].Cap())
	assert.Equal(t, 128, gpu.buffers[5].Cap())

	// slot 1 and then slot 0 again with a small frame: nothing shrinks
	record(1)
	record(1)
	assert.Len(t, gpu.buffers, 6)
	assert.Zero(t, gpu.buffers[4].destroyed)
}

func TestRecordFramesInFlightFloor(t *testing.T) {
	tests := []struct {
		configured int
		slots      int
	}{
		{configured: 0, slots: 2},
		{configured: 1, slots: 2},
		{configured: 3, slots: 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.configured), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.FramesInFlight = tt.configured
			b, gpu, win, fe := newTestBridge(t, WithConfig(cfg))
			defer b.Destroy()
			require.Equal(t, 2, win.frames)

			var vertex []Buffer
			for i := 0; i < tt.slots+1; i++ {
				fe.next = stream(quadList(fe.fontID, clip(0, 0, 10, 10)))
				cmd := &fakeCmd{}
				require.NoError(t, b.Record(cmd))
				vertex = append(vertex, cmd.vertex)
			}
			require.Len(t, gpu.buffers, 2*tt.slots)
			for i := 1; i < tt.slots; i++ {
				assert.NotSame(t, vertex[i-1], vertex[i], "consecutive frames share a vertex buffer")
			}
			assert.Same(t, vertex[0], vertex[tt.slots], "slot reused after a full cycle")
		})
	}
}

func TestRecordBufferAllocationFailure(t *testing.T) {
	b, gpu, _, fe := newTestBridge(t)
	defer b.Destroy()

	gpu.failOn = "buffer"
	fe.next = stream(quadList(fe.fontID, clip(0, 0, 10, 10)))
	cmd := &fakeCmd{}
	err := b.Record(cmd)
	assert.ErrorIs(t, err, errFake)
	assert.Empty(t, cmd.ops)

	gpu.failOn = ""
	fe.next = stream(quadList(fe.fontID, clip(0, 0, 10, 10)))
	assert.NoError(t, b.Record(cmd), "a failed frame does not poison the next one")
}

func TestRecordUnknownTexture(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	fe.next = stream(quadList(fe.fontID+42, clip(0, 0, 10, 10)))
	assert.ErrorIs(t, b.Record(&fakeCmd{}), ErrUnknownTexture)
}

func TestRecordTextureBoundOnce(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	fe.next = stream(
		quadList(fe.fontID, clip(0, 0, 10, 10), clip(0, 0, 20, 20)),
		quadList(fe.fontID, clip(0, 0, 30, 30)),
	)
	cmd := &fakeCmd{}
	require.NoError(t, b.Record(cmd))
	assert.Equal(t, 1, cmd.count("texture"))
	assert.Equal(t, 1, cmd.count("pipeline"))
	assert.Equal(t, 3, cmd.count("draw"))
}

func TestRecordUserCallback(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	cmd := &fakeCmd{}
	list := quadList(fe.fontID, clip(0, 0, 10, 10), clip(0, 0, 10, 10))
	list.Commands = []DrawCmd{
		list.Commands[0],
		{Callback: func() { cmd.ops = append(cmd.ops, "callback") }},
		list.Commands[1],
	}
	fe.next = stream(list)

	require.NoError(t, b.Record(cmd))
	assert.Equal(t, []string{
		"pipeline", "viewport", "push", "vertex", "index", "texture", "scissor", "draw",
		"callback",
		"pipeline", "viewport", "push", "vertex", "index", "texture", "scissor", "draw",
	}, cmd.ops)
	assert.Equal(t, [3]int{6, 6, 0}, cmd.draws[1])
	assert.Equal(t, 1, b.LastFrameStats().Callbacks)
}

func TestRenderCallbackOncePerFrame(t *testing.T) {
	b, _, _, fe := newTestBridge(t)
	defer b.Destroy()

	calls := 0
	b.SetRenderCallback(func() {
		calls++
		assert.Len(t, fe.frames, calls, "callback runs inside the frame")
	})

	for frame := 0; frame < 50; frame++ {
		require.NoError(t, b.Record(&fakeCmd{}))
	}
	assert.Equal(t, 50, calls)
	assert.Len(t, fe.frames, 50)

	b.SetRenderCallback(nil)
	_, err := b.Render()
	assert.NoError(t, err)
	assert.Equal(t, 50, calls)
}

func TestManyFramesUploadFontsOnce(t *testing.T) {
	b, gpu, _, _ := newTestBridge(t)
	defer b.Destroy()
	b.SetShowDemoWindow(true)

	for i := 0; i < 1000; i++ {
		require.NoError(t, b.Record(&fakeCmd{}))
	}
	assert.Equal(t, 1, gpu.fontUploads)
	assert.Equal(t, 1, gpu.descriptorPools)
	assert.Equal(t, 1, gpu.pipelines)
	assert.Len(t, gpu.buffers, 4)
}

func TestRecordReentry(t *testing.T) {
	b, _, _, _ := newTestBridge(t)
	defer b.Destroy()

	var inner, innerRender error
	b.SetRenderCallback(func() {
		inner = b.Record(&fakeCmd{})
		_, innerRender = b.Render()
	})
	require.NoError(t, b.Record(&fakeCmd{}))
	assert.ErrorIs(t, inner, ErrRecording)
	assert.ErrorIs(t, innerRender, ErrRecording)

	b.SetRenderCallback(nil)
	assert.NoError(t, b.Record(&fakeCmd{}), "state returns to idle")
}

func TestRecordAfterDestroy(t *testing.T) {
	b, _, _, _ := newTestBridge(t)
	b.Destroy()

	assert.ErrorIs(t, b.Record(&fakeCmd{}), ErrNotInitialized)
	_, err := b.Render()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestDeltaTime(t *testing.T) {
	now := time.Unix(100, 0)
	b, _, _, fe := newTestBridge(t, WithClock(func() time.Time { return now }))
	defer b.Destroy()

	_, err := b.Render()
	require.NoError(t, err)
	now = now.Add(25 * time.Millisecond)
	_, err = b.Render()
	require.NoError(t, err)
	_, err = b.Render()
	require.NoError(t, err)

	require.Len(t, fe.frames, 3)
	assert.InDelta(t, 1.0/60.0, fe.frames[0].DeltaTime, 1e-6)
	assert.InDelta(t, 0.025, fe.frames[1].DeltaTime, 1e-6)
	assert.InDelta(t, 1.0/60.0, fe.frames[2].DeltaTime, 1e-6, "a zero delta falls back to the default")
}

func TestProjection(t *testing.T) {
	apply := func(m lin.Mat4x4, x, y float32) (float32, float32) {
		return m[0][0]*x + m[1][0]*y + m[3][0], m[0][1]*x + m[1][1]*y + m[3][1]
	}

	m := projection(Vec2{}, Vec2{800, 600})
	x, y := apply(m, 0, 0)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)
	x, y = apply(m, 800, 600)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	m = projection(Vec2{100, 50}, Vec2{200, 100})
	x, y = apply(m, 200, 100)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)

	assert.Len(t, projectionBytes(&m), 64)
}
