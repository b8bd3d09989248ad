/*
Package gui bridges an immediate-mode GUI library into the command recording
of a Vulkan style renderer.

A Bridge owns the GPU objects the GUI needs (a descriptor pool, a command pool
for one-shot uploads, the font atlas texture and the overlay pipeline) and, once
per frame, turns the GUI library's draw-command stream into indexed draws
recorded into the caller's command buffer:

	b, err := gui.New(window, frontend)
	if err != nil {
		return err
	}
	defer b.Destroy()

	b.SetRenderCallback(func() {
		// declare widgets
	})

	// inside the render pass, once per frame
	err = b.Record(cmd)

The package is backend neutral. The GPU, CmdBuffer and Window interfaces are
implemented over Vulkan by package vkbackend, and the Frontend interface over
Dear ImGui by package dearimgui. Tests drive the bridge with fakes.

A Bridge is not safe for concurrent use. Display flags are expected to be
changed between frames on the thread that records.
*/
package gui
