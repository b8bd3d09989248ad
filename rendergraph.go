package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Command records work into the frame's primary command buffer while the
// render pass of the GraphicsApp is active.
type Command interface {
	Record(cb *CommandBuffer) error
}

// CommandFunc adapts a function to a Command
type CommandFunc func(cb *CommandBuffer) error

func (f CommandFunc) Record(cb *CommandBuffer) error {
	return f(cb)
}

type graphNode struct {
	name    string
	command Command
}

// RenderGraph is an ordered list of named commands recorded one after the
// other into the same render pass. Later nodes draw on top of earlier ones.
type RenderGraph struct {
	nodes []graphNode
}

func NewRenderGraph() *RenderGraph {
	return &RenderGraph{}
}

// Add appends a node. Adding a name twice replaces the command in place.
func (g *RenderGraph) Add(name string, c Command) *RenderGraph {
	for i := range g.nodes {
		if g.nodes[i].name == name {
			g.nodes[i].command = c
			return g
		}
	}
	g.nodes = append(g.nodes, graphNode{name: name, command: c})
	return g
}

// Remove drops the named node, it returns false if there was none.
func (g *RenderGraph) Remove(name string) bool {
	for i := range g.nodes {
		if g.nodes[i].name == name {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the node names in recording order
func (g *RenderGraph) Names() []string {
	ret := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ret[i] = n.name
	}
	return ret
}

func (g *RenderGraph) Len() int {
	return len(g.nodes)
}

// Record records every node in order and stops at the first failure.
func (g *RenderGraph) Record(cb *CommandBuffer) error {
	for _, n := range g.nodes {
		if err := n.command.Record(cb); err != nil {
			return fmt.Errorf("render graph node '%s': %w", n.name, err)
		}
	}
	return nil
}

// ClearDepth resets the depth attachment to Depth over the whole extent so
// later nodes are not occluded by earlier ones.
type ClearDepth struct {
	Extent func() vk.Extent2D
	Depth  float32
}

func (c *ClearDepth) Record(cb *CommandBuffer) error {
	e := c.Extent()
	if e.Width == 0 || e.Height == 0 {
		return nil
	}
	cb.CmdClearDepth(e, c.Depth)
	return nil
}
