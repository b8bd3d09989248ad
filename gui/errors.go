package gui

import "errors"

var (
	// ErrNilWindow is returned by New when no window is given.
	ErrNilWindow = errors.New("gui: nil window")
	// ErrNilDevice is returned by New when the window has no logical device.
	ErrNilDevice = errors.New("gui: window has no device")
	// ErrNilFrontend is returned by New when no GUI frontend is given.
	ErrNilFrontend = errors.New("gui: nil frontend")

	// ErrNotInitialized is returned when recording on a bridge that was
	// destroyed or never fully constructed.
	ErrNotInitialized = errors.New("gui: bridge not initialized")
	// ErrRecording is returned when Render or Record is entered while a
	// recording is already in progress on the same bridge.
	ErrRecording = errors.New("gui: recording already in progress")
	// ErrFontsUploaded is returned on a second font upload.
	ErrFontsUploaded = errors.New("gui: fonts already uploaded")
	// ErrUnknownTexture is returned when a draw command names a texture the
	// bridge does not own.
	ErrUnknownTexture = errors.New("gui: unknown texture")
)
