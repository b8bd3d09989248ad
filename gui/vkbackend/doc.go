/*
Package vkbackend implements the gui backend interfaces on top of vkg.

A Window adapts a prepared vkg.GraphicsApp; its GPU creates descriptor pools,
command pools, textures, the gui pipeline and host visible vertex and index
buffers from the app's resource manager. Node adds a gui.Bridge to the app's
render graph:

	win := vkbackend.NewWindow(app)
	bridge, err := gui.New(win, frontend)
	if err != nil {
		return err
	}
	app.Graph.Add("gui", vkbackend.Node{Bridge: bridge})

The pipeline loads gui.vert.spv and gui.frag.spv from the shader directory,
compiled from the sources in shaders/ with go generate.
*/
package vkbackend

//go:generate glslangValidator -V shaders/gui.vert -o shaders/gui.vert.spv
//go:generate glslangValidator -V shaders/gui.frag -o shaders/gui.frag.spv
