package physics

import "sync"

// FakeEngine is an in-memory Engine used by tests and by standalone demo
// runs that have no real simulation process to talk to. It keeps named
// devices and node fields in plain maps and advances a float64 clock on
// every Step.
type FakeEngine struct {
	mu sync.Mutex

	now         float64
	basicStepMS int32
	terminated  bool
	mode        Mode

	devices    map[string]Handle
	customData map[string]string
	sfFloat    map[string]float64
	sfColor    map[string][3]float64
}

// NewFakeEngine constructs an empty FakeEngine with the given basic step.
func NewFakeEngine(basicStepMS int32) *FakeEngine {
	return &FakeEngine{
		basicStepMS: basicStepMS,
		devices:     map[string]Handle{},
		customData:  map[string]string{},
		sfFloat:     map[string]float64{},
		sfColor:     map[string][3]float64{},
	}
}

func (e *FakeEngine) Now() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

func (e *FakeEngine) BasicStepMS() int32 { return e.basicStepMS }

// SetMode records the requested mode; FakeEngine has no wall-clock pacing
// to change, so this just makes the last-requested mode observable in tests.
func (e *FakeEngine) SetMode(mode Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = mode
}

// Mode returns the last mode passed to SetMode.
func (e *FakeEngine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Terminate marks the engine as finished; the next Step call returns
// Terminated.
func (e *FakeEngine) Terminate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminated = true
}

func (e *FakeEngine) Step(ms int32) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now += float64(ms) / 1000
	if e.terminated {
		return Terminated
	}
	return Continued
}

// PutDevice registers a device handle under name for later GetDevice calls.
func (e *FakeEngine) PutDevice(name string, h Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.devices[name] = h
}

func (e *FakeEngine) GetDevice(name string, _ DeviceKind) (Handle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.devices[name]
	return h, ok
}

func (e *FakeEngine) CustomDataGet(nodeName string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.customData[nodeName]
	return v, ok
}

func (e *FakeEngine) CustomDataSet(nodeName, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.customData[nodeName] = value
}

func (e *FakeEngine) NodeFieldGetSFFloat(nodeName, field string) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.sfFloat[nodeName+"."+field]
	return v, ok
}

func (e *FakeEngine) NodeFieldSetSFFloat(nodeName, field string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sfFloat[nodeName+"."+field] = value
}

func (e *FakeEngine) NodeFieldGetSFColor(nodeName, field string) ([3]float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.sfColor[nodeName+"."+field]
	return v, ok
}

func (e *FakeEngine) NodeFieldSetSFColor(nodeName, field string, value [3]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sfColor[nodeName+"."+field] = value
}

func (e *FakeEngine) NodeRemove(nodeName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.customData, nodeName)
}

// FakeHandle is a trivial Handle implementation for tests: every method
// mutates/reads plain fields with no unit conversion.
type FakeHandle struct {
	Velocity     float64
	MaxVel       float64
	Position     float64
	MinPos       float64
	MaxPos       float64
	RawValue     float64
	Colour       int
	Enabled      bool
	FrameData    []byte
	FrameWidth   int
	FrameHeight  int
	SamplePeriod int32
}

func (h *FakeHandle) SetVelocity(v float64)        { h.Velocity = v }
func (h *FakeHandle) MaxVelocity() float64         { return h.MaxVel }
func (h *FakeHandle) SetPosition(v float64)        { h.Position = v }
func (h *FakeHandle) MinPosition() float64         { return h.MinPos }
func (h *FakeHandle) MaxPosition() float64         { return h.MaxPos }
func (h *FakeHandle) Value() float64               { return h.RawValue }
func (h *FakeHandle) Set(colourIndex int)           { h.Colour = colourIndex }
func (h *FakeHandle) Get() int                      { return h.Colour }
func (h *FakeHandle) Enable(period int32)           { h.Enabled = true; h.SamplePeriod = period }
func (h *FakeHandle) Disable()                      { h.Enabled = false }
func (h *FakeHandle) Image() []byte                 { return h.FrameData }
func (h *FakeHandle) Width() int                    { return h.FrameWidth }
func (h *FakeHandle) Height() int                   { return h.FrameHeight }
