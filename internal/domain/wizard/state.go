package wizard

// State represents a step in the voucher form lifecycle
type State string

const (
	StateDeposit    State = "STEP_DEPOSIT"
	StateBank       State = "STEP_BANK"
	StateAffiliate  State = "STEP_AFFILIATE"
	StateSubmitting State = "SUBMITTING"
	StateClosed     State = "CLOSED"
)

var validStates = map[State]bool{
	StateDeposit:    true,
	StateBank:       true,
	StateAffiliate:  true,
	StateSubmitting: true,
	StateClosed:     true,
}

var terminalStates = map[State]bool{
	StateClosed: true,
}

// IsTerminal returns true if no further transitions are allowed from the state
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a valid wizard state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
