package vkbackend

import (
	vkg "github.com/celer/vkgui"
	"github.com/celer/vkgui/gui"
)

// Node records a gui bridge as a node of a vkg.RenderGraph. Add it last so
// the gui is drawn over the scene.
type Node struct {
	Bridge *gui.Bridge
}

func (n Node) Record(cb *vkg.CommandBuffer) error {
	if n.Bridge == nil {
		return nil
	}
	return n.Bridge.Record(NewCmdBuffer(cb))
}
