package devices

import "github.com/srobo/sbot-simulator/internal/physics"

// Camera is a single frame-grabbing camera. A Camera built with a nil
// physics.Handle is the Null variant: it always reports a 0x0 image and no
// bytes, matching original_source's NullCamera.
type Camera struct {
	handle    physics.Handle
	facade    *physics.Facade
	frameRate int32 // fps
}

func NewCamera(handle physics.Handle, facade *physics.Facade, frameRate int32) *Camera {
	return &Camera{handle: handle, facade: facade, frameRate: frameRate}
}

func NewNullCamera() *Camera { return &Camera{} }

// Image acquires one fresh frame (spec.md §4.2): compute the sample period,
// enable capture, advance simulated time by that period, read the frame
// buffer, then disable capture. Returns nil for the Null variant.
func (c *Camera) Image() []byte {
	if c.handle == nil {
		return nil
	}
	period := c.samplePeriodMS()
	c.handle.Enable(period)
	c.facade.Step(period)
	data := c.handle.Image()
	c.handle.Disable()
	return data
}

// samplePeriodMS computes floor(1000/frame_rate / basic_step_ms) * basic_step_ms.
func (c *Camera) samplePeriodMS() int32 {
	basicStepMS := c.facade.BasicStepMS()
	periods := int32(1000 / c.frameRate / basicStepMS)
	if periods < 1 {
		periods = 1
	}
	return periods * basicStepMS
}

// Resolution returns the frame's (width, height) in pixels.
func (c *Camera) Resolution() (width, height int) {
	if c.handle == nil {
		return 0, 0
	}
	return c.handle.Width(), c.handle.Height()
}
