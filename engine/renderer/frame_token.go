package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
)

var (
	// ErrFrameInFlight is returned by BeginFrame when the previous token has not been ended.
	ErrFrameInFlight = errors.New("frame already in flight")
	// ErrFrameTokenConsumed is returned when a token is used after EndFrame.
	ErrFrameTokenConsumed = errors.New("frame token already consumed")
	// ErrSurfaceLost wraps surface acquisition failures. It is fatal for the session.
	ErrSurfaceLost = errors.New("surface lost")
	// ErrPassOpen is returned when a pass is started before the previous one was ended.
	ErrPassOpen = errors.New("previous render pass not ended")
	// ErrNoDepth is returned when a depth pass is requested without a depth attachment.
	ErrNoDepth = errors.New("no depth attachment")
)

// FrameToken is the single-use permission to draw one frame. It is produced by
// FrameState.BeginFrame and consumed by exactly one FrameState.EndFrame. It has no exported
// fields and no exported constructor, so a token can only come from BeginFrame.
type FrameToken struct {
	owner   *FrameState
	encoder gpu.CommandEncoder
	color   gpu.TextureView
	depth   gpu.TextureView
	open    *trackedPass
}

// trackedPass remembers whether it was ended so the token can close a pass a failing
// draw left open.
type trackedPass struct {
	gpu.PassEncoder
	ended bool
}

func (p *trackedPass) End() {
	if p.ended {
		return
	}
	p.ended = true
	p.PassEncoder.End()
}

// Pass begins a render pass that loads the existing color contents, and depth when requested.
// The returned encoder must be ended before the next Pass call.
//
// Parameters:
//   - label: a debug label for the pass
//   - depth: whether to attach the shared depth buffer
//
// Returns:
//   - gpu.PassEncoder: the encoder for the pass
//   - error: ErrFrameTokenConsumed, ErrPassOpen or ErrNoDepth
func (t *FrameToken) Pass(label string, depth bool) (gpu.PassEncoder, error) {
	if t.Consumed() {
		return nil, ErrFrameTokenConsumed
	}
	if t.open != nil && !t.open.ended {
		return nil, fmt.Errorf("%s: %w", label, ErrPassOpen)
	}

	desc := gpu.PassDescriptor{Label: label, Color: t.color}
	if depth {
		if t.depth == nil {
			return nil, fmt.Errorf("%s: %w", label, ErrNoDepth)
		}
		desc.Depth = t.depth
	}
	t.open = &trackedPass{PassEncoder: t.encoder.BeginRenderPass(desc)}
	return t.open, nil
}

// Consumed reports whether EndFrame has already taken this token.
func (t *FrameToken) Consumed() bool {
	return t == nil || t.encoder == nil
}

// take moves the encoder out of the token, closing any pass left open.
func (t *FrameToken) take() gpu.CommandEncoder {
	if t.open != nil {
		t.open.End()
		t.open = nil
	}
	enc := t.encoder
	t.encoder = nil
	t.color = nil
	t.depth = nil
	return enc
}

// RunFrame pairs BeginFrame and EndFrame around draw. The frame is ended even when draw
// fails; both errors are returned.
//
// Parameters:
//   - fs: the frame state
//   - draw: records the frame's passes into the token
//
// Returns:
//   - error: the BeginFrame error, or the joined draw and EndFrame errors
func RunFrame(fs *FrameState, draw func(tok *FrameToken) error) error {
	tok, err := fs.BeginFrame()
	if err != nil {
		return err
	}
	drawErr := draw(tok)
	return errors.Join(drawErr, fs.EndFrame(tok))
}
