package overlay

// State is the overlay's visibility state.
type State int

const (
	// Closed means the overlay is hidden.
	Closed State = iota
	// Open means the overlay is fully visible.
	Open
	// Moving means a transition effect is in flight.
	Moving
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Moving:
		return "moving"
	default:
		return "unknown"
	}
}

// Direction tells which way an in-flight effect is heading.
type Direction int

const (
	Opening Direction = iota
	Closing
)

func (d Direction) String() string {
	if d == Opening {
		return "opening"
	}
	return "closing"
}

// event is an input to the transition table.
type event int

const (
	eventOpen event = iota
	eventClose
	eventEffectDone
	eventAutoClose
)

func (e event) String() string {
	switch e {
	case eventOpen:
		return "open"
	case eventClose:
		return "close"
	case eventEffectDone:
		return "effect-done"
	case eventAutoClose:
		return "auto-close"
	default:
		return "unknown"
	}
}

// action is the side effect selected by the transition table.
type action int

const (
	// actIgnore drops the event silently.
	actIgnore action = iota
	// actReject drops the event and logs a warning.
	actReject
	actBeginOpen
	actBeginClose
	actRearm
	actSettle
)

// transitions maps (state, event) to the action taken. Pairs that are not
// listed are ignored.
var transitions = map[State]map[event]action{
	Closed: {
		eventOpen:       actBeginOpen,
		eventClose:      actReject,
		eventEffectDone: actIgnore,
		eventAutoClose:  actIgnore,
	},
	Open: {
		eventOpen:       actRearm,
		eventClose:      actBeginClose,
		eventEffectDone: actIgnore,
		eventAutoClose:  actBeginClose,
	},
	Moving: {
		eventOpen:       actRearm,
		eventClose:      actReject,
		eventEffectDone: actSettle,
		eventAutoClose:  actIgnore,
	},
}

func lookup(s State, e event) action {
	if row, ok := transitions[s]; ok {
		if a, ok := row[e]; ok {
			return a
		}
	}
	return actIgnore
}
