package supervisor

import (
	"fmt"
	"math"
	"sort"

	"github.com/srobo/sbot-simulator/internal/physics"
)

// MatchLightingIntensity and DefaultLuminosity are the fixed constants the
// cue stack below is built from (original_source's lighting_control.py).
const (
	MatchLightingIntensity = 1.5
	DefaultLuminosity      = 1.0
)

// CueTime is either an Absolute(seconds) or a FromEnd(seconds) cue start
// time (spec.md §4.7.1).
type CueTime struct {
	fromEnd bool
	seconds float64
}

func Absolute(seconds float64) CueTime { return CueTime{seconds: seconds} }
func FromEnd(seconds float64) CueTime  { return CueTime{fromEnd: true, seconds: seconds} }

// Colour is an (r,g,b) triple in [0,1].
type Colour [3]float64

// Cue is a single fixed lighting event in the cue stack.
type Cue struct {
	StartTime  CueTime
	FadeTime   *float64 // seconds; nil means an instant cut
	LightDef   string
	Intensity  float64
	Colour     Colour
	Luminosity float64
	Name       string
}

// defaultCueStack is the fixed lighting program for every match
// (original_source's CUE_STACK).
func defaultCueStack() []Cue {
	f := func(v float64) *float64 { return &v }
	return []Cue{
		{StartTime: Absolute(0), LightDef: "SUN", Intensity: 0.2, Colour: Colour{1, 1, 1}, Luminosity: 0.05, Name: "Pre-set"},
		{StartTime: Absolute(0), FadeTime: f(1.5), LightDef: "SUN", Intensity: MatchLightingIntensity, Colour: Colour{1, 1, 1}, Luminosity: DefaultLuminosity, Name: "Fade-up"},
		{StartTime: FromEnd(0), LightDef: "SUN", Intensity: 1, Colour: Colour{0.8, 0.1, 0.1}, Luminosity: 0.1, Name: "End of match"},
		{StartTime: FromEnd(1), LightDef: "SUN", Intensity: MatchLightingIntensity, Colour: Colour{1, 1, 1}, Luminosity: DefaultLuminosity, Name: "Post-match image"},
	}
}

// Step is a single fully-resolved lighting write at a fixed timestep.
// Intensity/Colour/Luminosity are nil when the originating cue didn't touch
// that field; Name is empty except on the first step of a fade (or the
// single step of a non-fading cue).
type Step struct {
	Timestep   int
	LightDef   string
	Intensity  *float64
	Colour     *Colour
	Luminosity *float64
	Name       string
}

// lightState tracks a light's last-known intensity/colour, used as the fade
// start point for the next cue touching that light.
type lightState struct {
	intensity float64
	colour    Colour
}

// LightingEngine owns the expanded step list and services it against the
// physics facade as simulated time advances (spec.md §4.7.1).
type LightingEngine struct {
	facade        *physics.Facade
	finalTimestep int
	basicStepMS   int32
	ambientNode   string
	steps         []Step
	onEffect      func(name string)
}

// SetEffectCallback registers a function invoked with the cue name whenever a
// named lighting effect begins. Used by Supervisor to forward the event to
// the ambient monitor dashboard; nil (the default) disables this.
func (e *LightingEngine) SetEffectCallback(fn func(name string)) {
	e.onEffect = fn
}

// NewLightingEngine builds and expands the fixed cue stack against a match
// of matchTimesteps basic steps.
func NewLightingEngine(facade *physics.Facade, ambientNode string, matchTimesteps int, basicStepMS int32) *LightingEngine {
	e := &LightingEngine{
		facade:        facade,
		finalTimestep: matchTimesteps,
		basicStepMS:   basicStepMS,
		ambientNode:   ambientNode,
	}
	cues := convertFromEndTimes(defaultCueStack(), matchTimesteps, basicStepMS)
	e.steps = generateSteps(cues, basicStepMS, initialLightStates(facade, cues), initialLuminosity(facade, ambientNode))
	return e
}

func initialLightStates(facade *physics.Facade, cues []Cue) map[string]lightState {
	states := make(map[string]lightState)
	for _, cue := range cues {
		if _, ok := states[cue.LightDef]; ok {
			continue
		}
		intensity, _ := facade.NodeFieldGetSFFloat(cue.LightDef, "intensity")
		colour, _ := facade.NodeFieldGetSFColor(cue.LightDef, "color")
		states[cue.LightDef] = lightState{intensity: intensity, colour: Colour(colour)}
	}
	return states
}

func initialLuminosity(facade *physics.Facade, ambientNode string) float64 {
	lum, _ := facade.NodeFieldGetSFFloat(ambientNode, "luminosity")
	return lum
}

// convertFromEndTimes resolves FromEnd(t) cues to Absolute seconds:
// end_time + t - (6 * basic_step_ms/1000), where end_time is the match
// duration in seconds. The offset accounts for a 25fps video cutting the
// last 5 steps, so FromEnd(0) lands on the final visible frame.
func convertFromEndTimes(cues []Cue, matchTimesteps int, basicStepMS int32) []Cue {
	endTime := float64(matchTimesteps) * float64(basicStepMS) / 1000
	offset := 6 * float64(basicStepMS) / 1000

	out := make([]Cue, len(cues))
	for i, cue := range cues {
		if cue.StartTime.fromEnd {
			cue.StartTime = Absolute(endTime + cue.StartTime.seconds - offset)
		}
		out[i] = cue
	}
	return out
}

// generateSteps expands every cue into one or more Steps, in input order,
// then stable-sorts the full list by timestep (spec.md §4.7.1 step 2-3).
func generateSteps(cues []Cue, basicStepMS int32, lightStates map[string]lightState, luminosity float64) []Step {
	var steps []Step
	for _, cue := range cues {
		state := lightStates[cue.LightDef]
		expanded := expandCue(cue, basicStepMS, state, luminosity)
		steps = append(steps, expanded...)

		last := expanded[len(expanded)-1]
		if last.Intensity != nil && last.Colour != nil {
			lightStates[cue.LightDef] = lightState{intensity: *last.Intensity, colour: *last.Colour}
		}
		if last.Luminosity != nil {
			luminosity = *last.Luminosity
		}
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Timestep < steps[j].Timestep })
	return steps
}

// expandCue expands a single cue into its steps. Absent a fade, it's a
// single step; with a fade, N = max(1, round(fade_seconds*1000/basicStepMS))
// linearly-interpolated steps followed by one exact final step, so rounding
// never leaves a residual (spec.md §4.7.1, testable property 7, S6).
func expandCue(cue Cue, basicStepMS int32, from lightState, fromLuminosity float64) []Step {
	start := int(math.Round(cue.StartTime.seconds * 1000 / float64(basicStepMS)))

	if cue.FadeTime == nil {
		intensity, colour, lum := cue.Intensity, cue.Colour, cue.Luminosity
		return []Step{{
			Timestep: start, LightDef: cue.LightDef,
			Intensity: &intensity, Colour: &colour, Luminosity: &lum,
			Name: cue.Name,
		}}
	}

	n := int(math.Round(*cue.FadeTime * 1000 / float64(basicStepMS)))
	if n < 1 {
		n = 1
	}

	intensityStep := (cue.Intensity - from.intensity) / float64(n)
	colourStep := Colour{
		(cue.Colour[0] - from.colour[0]) / float64(n),
		(cue.Colour[1] - from.colour[1]) / float64(n),
		(cue.Colour[2] - from.colour[2]) / float64(n),
	}
	luminosityStep := (cue.Luminosity - fromLuminosity) / float64(n)

	steps := make([]Step, 0, n+1)
	for k := 0; k < n; k++ {
		intensity := from.intensity + intensityStep*float64(k)
		colour := Colour{
			from.colour[0] + colourStep[0]*float64(k),
			from.colour[1] + colourStep[1]*float64(k),
			from.colour[2] + colourStep[2]*float64(k),
		}
		lum := fromLuminosity + luminosityStep*float64(k)
		name := ""
		if k == 0 {
			name = cue.Name
		}
		steps = append(steps, Step{
			Timestep: start + k, LightDef: cue.LightDef,
			Intensity: &intensity, Colour: &colour, Luminosity: &lum,
			Name: name,
		})
	}

	intensity, colour, lum := cue.Intensity, cue.Colour, cue.Luminosity
	steps = append(steps, Step{
		Timestep: start + n, LightDef: cue.LightDef,
		Intensity: &intensity, Colour: &colour, Luminosity: &lum,
	})
	return steps
}

// Service applies every step due at currentTimestep. If currentTimestep has
// reached the final timestep, all remaining steps are applied at once
// (spec.md §4.7.1 service phase). Returns the number of basic timesteps
// until the next pending step, or -1 if none remain.
func (e *LightingEngine) Service(currentTimestep int) int {
	if currentTimestep >= e.finalTimestep {
		for _, step := range e.steps {
			e.apply(step)
		}
		e.steps = nil
		return -1
	}

	i := 0
	for i < len(e.steps) && e.steps[i].Timestep == currentTimestep {
		e.apply(e.steps[i])
		i++
	}
	e.steps = e.steps[i:]

	if len(e.steps) == 0 {
		return -1
	}
	return e.steps[0].Timestep - currentTimestep
}

func (e *LightingEngine) apply(step Step) {
	if step.Name != "" {
		fmt.Printf("Running lighting effect: %s\n", step.Name)
		if e.onEffect != nil {
			e.onEffect(step.Name)
		}
	}
	if step.Intensity != nil {
		e.facade.NodeFieldSetSFFloat(step.LightDef, "intensity", *step.Intensity)
	}
	if step.Colour != nil {
		e.facade.NodeFieldSetSFColor(step.LightDef, "color", [3]float64(*step.Colour))
	}
	if step.Luminosity != nil {
		e.facade.NodeFieldSetSFFloat(e.ambientNode, "luminosity", *step.Luminosity)
	}
}
