package domain

import "go.trai.ch/zerr"

// Stage is the position of a platform generation run in its state machine.
type Stage uint8

const (
	StageUnparsed Stage = iota
	StageHeaderLoaded
	StageOptionsResolved
	StageModulesBound
	StageFVAssigned
	StageEmitted
)

var stageNames = [...]string{
	StageUnparsed:        "UNPARSED",
	StageHeaderLoaded:    "HEADER_LOADED",
	StageOptionsResolved: "OPTIONS_RESOLVED",
	StageModulesBound:    "MODULES_BOUND",
	StageFVAssigned:      "FV_ASSIGNED",
	StageEmitted:         "EMITTED",
}

// String returns the stage name.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "UNKNOWN"
}

// StageTracker enforces that stages are entered exactly once and in order.
type StageTracker struct {
	current Stage
}

// Current returns the stage reached so far.
func (t *StageTracker) Current() Stage {
	return t.current
}

// Advance moves to the next stage. Any other target is rejected.
func (t *StageTracker) Advance(next Stage) error {
	if next != t.current+1 || next > StageEmitted {
		err := zerr.With(ErrInvalidStageTransition, "from", t.current.String())
		return zerr.With(err, "to", next.String())
	}
	t.current = next
	return nil
}
