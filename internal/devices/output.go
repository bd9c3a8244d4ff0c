package devices

// Output is one of the power board's switched rail outputs. It has no
// physics coupling in this simulator: enabling/disabling an output changes
// no downstream device, it's simply a flag the board reports back.
type Output struct {
	enabled bool
}

func NewOutput() *Output { return &Output{} }

func (o *Output) SetEnabled(enabled bool) { o.enabled = enabled }
func (o *Output) Enabled() bool           { return o.enabled }

// GetCurrent always reports 0: the simulator has no per-rail current model.
func (o *Output) GetCurrent() int32 { return 0 }

// Buzzer tracks the last note played on the power board's buzzer. It is
// always a Null device: there is no audio output in simulation.
type Buzzer struct {
	frequency int32
	duration  int32
}

func NewBuzzer() *Buzzer { return &Buzzer{} }

func (b *Buzzer) SetNote(freq, dur int32) {
	b.frequency = freq
	b.duration = dur
}

func (b *Buzzer) GetNote() (freq, dur int32) { return b.frequency, b.duration }

// Button is the power board's start button. It is always a Null device: the
// simulated button is permanently pressed, matching original_source's
// NullButton.get_state (there is no physical button to click in sim).
type Button struct{}

func NewButton() *Button { return &Button{} }

func (b *Button) State() bool { return true }
