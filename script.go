package buckets

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// gestureScriptFile is the top-level JSON structure of a gesture script.
type gestureScriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// GestureScript sequences injected pointer input across frames for automated
// runs. Attach it with Input.SetScript.
type GestureScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// OnMark is called for "mark" steps with the step's label. Hosts use it
	// to log checkpoints or capture the screen.
	OnMark func(label string)
}

// LoadGestureScript parses a JSON gesture script.
//
// Supported actions: tap, hold, drag, press, move, release, wait and mark.
func LoadGestureScript(jsonData []byte) (*GestureScript, error) {
	var file gestureScriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "tap", "hold", "drag", "press", "move", "release", "wait", "mark":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &GestureScript{steps: file.Steps}, nil
}

// Done reports whether every step has run and its input drained.
func (s *GestureScript) Done() bool {
	return s.done
}

// step advances the script by one frame. Called from Input.Poll.
func (s *GestureScript) step(in *Input) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(in.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "tap":
		in.InjectTap(st.X, st.Y)
	case "hold":
		in.InjectHold(st.X, st.Y, st.Frames)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "press":
		in.InjectPress(st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "release":
		in.InjectRelease(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mark":
		if s.OnMark != nil {
			s.OnMark(st.Label)
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(in.injectQueue) == 0 {
		s.done = true
	}
}
