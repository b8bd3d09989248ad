// Package dearimgui implements gui.Frontend with Dear ImGui through
// imgui-go, and forwards glfw input to it.
package dearimgui
