package dearimgui

import (
	"math"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/vulkan-go/glfw/v3.3/glfw"
)

// Pointer is the part of a glfw window polled for the mouse every frame.
type Pointer interface {
	GetCursorPos() (x, y float64)
	GetMouseButton(button glfw.MouseButton) glfw.Action
	GetAttrib(attrib glfw.Hint) int
}

// InputHandler forwards glfw input events to a Frontend. It should be the
// first input module of the host: an event is consumed when the gui wants
// the mouse or keyboard for itself.
type InputHandler struct {
	frontend *Frontend
	pointer  Pointer

	mouseJustPressed [3]bool
}

// NewInputHandler maps the navigation keys of f to glfw keys and polls
// pointer at the start of every frame of f.
func NewInputHandler(f *Frontend, pointer Pointer) *InputHandler {
	h := &InputHandler{frontend: f, pointer: pointer}
	for imguiKey, key := range keyMap {
		f.io.KeyMap(imguiKey, int(key))
	}
	f.input = h
	return h
}

var keyMap = map[int]glfw.Key{
	imgui.KeyTab:        glfw.KeyTab,
	imgui.KeyLeftArrow:  glfw.KeyLeft,
	imgui.KeyRightArrow: glfw.KeyRight,
	imgui.KeyUpArrow:    glfw.KeyUp,
	imgui.KeyDownArrow:  glfw.KeyDown,
	imgui.KeyPageUp:     glfw.KeyPageUp,
	imgui.KeyPageDown:   glfw.KeyPageDown,
	imgui.KeyHome:       glfw.KeyHome,
	imgui.KeyEnd:        glfw.KeyEnd,
	imgui.KeyInsert:     glfw.KeyInsert,
	imgui.KeyDelete:     glfw.KeyDelete,
	imgui.KeyBackspace:  glfw.KeyBackspace,
	imgui.KeySpace:      glfw.KeySpace,
	imgui.KeyEnter:      glfw.KeyEnter,
	imgui.KeyEscape:     glfw.KeyEscape,
	imgui.KeyA:          glfw.KeyA,
	imgui.KeyC:          glfw.KeyC,
	imgui.KeyV:          glfw.KeyV,
	imgui.KeyX:          glfw.KeyX,
	imgui.KeyY:          glfw.KeyY,
	imgui.KeyZ:          glfw.KeyZ,
}

var buttons = [...]glfw.MouseButton{glfw.MouseButton1, glfw.MouseButton2, glfw.MouseButton3}

func buttonIndex(b glfw.MouseButton) (int, bool) {
	for i, button := range buttons {
		if button == b {
			return i, true
		}
	}
	return 0, false
}

// update runs right before a new frame begins.
func (h *InputHandler) update() {
	io := h.frontend.io
	if h.pointer == nil {
		return
	}
	if h.pointer.GetAttrib(glfw.Focused) != 0 {
		x, y := h.pointer.GetCursorPos()
		io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	// a press and release between two frames still registers as a click
	for i := range h.mouseJustPressed {
		down := h.mouseJustPressed[i] || h.pointer.GetMouseButton(buttons[i]) == glfw.Press
		io.SetMouseButtonDown(i, down)
		h.mouseJustPressed[i] = false
	}
}

// KeyChange always tracks the key state and consumes the event when the gui
// wants the keyboard.
func (h *InputHandler) KeyChange(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) bool {
	io := h.frontend.io
	switch action {
	case glfw.Press:
		io.KeyPress(int(key))
	case glfw.Release:
		io.KeyRelease(int(key))
	}

	// Modifiers are not reliable across systems
	io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))

	_, keyboard := h.frontend.WantCapture()
	return keyboard
}

func (h *InputHandler) MouseScrollChange(x, y float64) bool {
	if mouse, _ := h.frontend.WantCapture(); !mouse {
		return false
	}
	h.frontend.io.AddMouseWheelDelta(float32(x), float32(y))
	return true
}

// CursorPosChange consumes the move when the gui wants the mouse, the
// position itself is polled at the start of the frame.
func (h *InputHandler) CursorPosChange(x, y float64) bool {
	mouse, _ := h.frontend.WantCapture()
	return mouse
}

func (h *InputHandler) MouseButtonChange(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) bool {
	if mouse, _ := h.frontend.WantCapture(); !mouse {
		return false
	}
	if i, ok := buttonIndex(button); ok && action == glfw.Press {
		h.mouseJustPressed[i] = true
	}
	return true
}

func (h *InputHandler) CharChange(char rune) bool {
	if _, keyboard := h.frontend.WantCapture(); !keyboard {
		return false
	}
	h.frontend.io.AddInputCharacters(string(char))
	return true
}
