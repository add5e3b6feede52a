package checkout

type Status string

const (
	StatusIdle            Status = "IDLE"
	StatusValidatingInput Status = "VALIDATING_INPUT"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusPersisting      Status = "PERSISTING"
	StatusSucceeded       Status = "SUCCEEDED"
	StatusFailed          Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

var transitions = map[Status][]Status{
	StatusIdle:            {StatusValidatingInput},
	StatusValidatingInput: {StatusAwaitingPayment, StatusFailed},
	StatusAwaitingPayment: {StatusPersisting, StatusFailed},
	StatusPersisting:      {StatusSucceeded, StatusFailed},
	// terminal states accept a fresh attempt
	StatusSucceeded: {StatusValidatingInput},
	StatusFailed:    {StatusValidatingInput},
}

func CanTransitionTo(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
