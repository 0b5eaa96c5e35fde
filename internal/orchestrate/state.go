package orchestrate

// State is a step of one orchestrated comparison.
type State int

const (
	Configured State = iota
	InputsValidated
	ReferenceReady
	Compared
	Done
	Failed
)

var stateNames = [...]string{
	Configured:      "configured",
	InputsValidated: "inputs_validated",
	ReferenceReady:  "reference_ready",
	Compared:        "compared",
	Done:            "done",
	Failed:          "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
