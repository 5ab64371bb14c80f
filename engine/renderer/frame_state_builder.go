package renderer

import "github.com/cogentcore/webgpu/wgpu"

// FrameStateOption is a functional option applied to a FrameState during NewFrameState.
type FrameStateOption func(*FrameState)

// WithSize sets the initial canvas size. Defaults to 864x1024.
//
// Parameters:
//   - width, height: the canvas size in pixels
//
// Returns:
//   - FrameStateOption: a function that sets the initial size
func WithSize(width, height int) FrameStateOption {
	return func(fs *FrameState) {
		if width > 0 && height > 0 {
			fs.width, fs.height = width, height
		}
	}
}

// WithClock replaces the millisecond clock used for the time uniform.
//
// Parameters:
//   - clock: returns the current time in milliseconds
//
// Returns:
//   - FrameStateOption: a function that installs the clock
func WithClock(clock func() float64) FrameStateOption {
	return func(fs *FrameState) {
		if clock != nil {
			fs.clock = clock
		}
	}
}

// WithClearColor sets the color the frame's clear pass writes.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - FrameStateOption: a function that sets the clear color
func WithClearColor(c wgpu.Color) FrameStateOption {
	return func(fs *FrameState) {
		fs.clearColor = c
	}
}

// WithFrameCounter seeds the frame counter. Mostly useful to exercise wrap-around.
func WithFrameCounter(n uint32) FrameStateOption {
	return func(fs *FrameState) {
		fs.frameCounter = n
	}
}
