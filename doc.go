/*
Package vkg implements a thin layer atop the Vulkan graphics API for Go. Vulkan leaves
almost everything OpenGL used to manage up to the application; this package wraps the
parts an interactive renderer needs so they are a little more palatable to gophers,
while every object keeps its native handle in a field prefixed with 'VK' so callers
are never limited by what is wrapped.

Native Vulkan terms

	Instance		the vulkan runtime instance
	PhysicalDevice		the physical hardware device
	Device			the logical device, the target of most of the vulkan apis
	Queue			a queue command buffers are submitted to
	DeviceMemory		an allocation of host or device memory backing buffers and images
	Buffer			vertex, index or other data bound to device memory
	Image, ImageView	an image and a way of viewing it
	Sampler			how a shader reads from an image
	DescriptorSet		the resources a shader reads, laid out by a DescriptorSetLayout
	Pipeline		a description of how to process data on the GPU
	RenderPass		the attachments a frame draws into
	Swapchain		the images presented to a window

What this package adds

GraphicsApp:
	window, device, swapchain and render pass setup, and a frame loop keeping a
	configurable number of frames in flight. Each frame records the app's RenderGraph
	into one primary command buffer inside the render pass.
RenderGraph:
	an ordered list of named Commands, for example a 3D scene, a depth clear and a
	GUI overlay drawn on top.
ResourceManager:
	named pools of device memory from which buffers and images are sub allocated,
	with a staging pool for uploads to device local memory.
GraphicsPipelineConfig:
	defaults for the many structures a graphics pipeline needs. Viewport and scissor
	are dynamic by default so pipelines survive a resize.

A typical frame loop:

	app, _ := vkg.NewGraphicsApp("demo", vkg.Version{Major: 1})
	app.SetWindow(window)
	app.Init()
	app.PrepareToDraw()
	app.Graph.Add("scene", scene).Add("gui", overlay)
	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := app.DrawFrame(); err != nil {
			return err
		}
	}

Logging goes through the slog.Logger set with SetLogger and is silent by default.
*/
package vkg
