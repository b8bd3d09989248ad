package gui

// VertexLayout is the binary layout of the vertex and index data in a
// draw-command stream.
type VertexLayout struct {
	// Stride is the size of one vertex in bytes.
	Stride int
	// Offsets of the position (2 x float32), texture coordinate
	// (2 x float32) and color (4 x unorm8) inside a vertex.
	PosOffset   int
	UVOffset    int
	ColorOffset int
	// IndexSize is 2 or 4.
	IndexSize int
}

// DefaultVertexLayout is the layout Dear ImGui uses unless compiled otherwise.
var DefaultVertexLayout = VertexLayout{
	Stride:      20,
	PosOffset:   0,
	UVOffset:    8,
	ColorOffset: 16,
	IndexSize:   2,
}

func (l VertexLayout) IndexType() IndexType {
	if l.IndexSize == 4 {
		return IndexUint32
	}
	return IndexUint16
}

// DrawCmd is one batch of a draw list.
type DrawCmd struct {
	// ClipRect is in display coordinates.
	ClipRect Rect[float32]
	Texture  TextureID
	// ElementCount is the number of indices, starting right after the
	// indices of the previous commands of the same list.
	ElementCount int
	// Callback, when set, is invoked in stream order instead of drawing.
	Callback func()
}

// DrawList is a vertex buffer, an index buffer and the commands drawing
// from them. Indices are relative to the list's first vertex.
type DrawList struct {
	Vertices []byte
	Indices  []byte
	Commands []DrawCmd
}

// DrawData is the draw-command stream of one frame.
type DrawData struct {
	DisplayPos       Vec2
	DisplaySize      Vec2
	FramebufferScale Vec2
	Lists            []DrawList
}

// Sizes returns the vertex and index bytes of all lists.
func (d *DrawData) Sizes() (vertexBytes, indexBytes int) {
	if d == nil {
		return 0, 0
	}
	for _, l := range d.Lists {
		vertexBytes += len(l.Vertices)
		indexBytes += len(l.Indices)
	}
	return vertexBytes, indexBytes
}

// ElementCount is the number of indices drawn by all commands.
func (d *DrawData) ElementCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, l := range d.Lists {
		for _, c := range l.Commands {
			n += c.ElementCount
		}
	}
	return n
}

// CommandCount is the number of batches in the stream.
func (d *DrawData) CommandCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, l := range d.Lists {
		n += len(l.Commands)
	}
	return n
}
