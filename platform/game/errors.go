package game

import "fmt"

// RuleError is a rejected command: wrong turn, wrong phase, short on
// cash, illegal build, and so on. It never corresponds to a state
// change; the dispatcher relays it to the offending sender only.
type RuleError struct {
	Msg string
}

func (e *RuleError) Error() string {
	return e.Msg
}

func errf(format string, args ...interface{}) error {
	return &RuleError{Msg: fmt.Sprintf(format, args...)}
}

// IsRuleError reports whether err is a legality rejection rather than
// an internal failure.
func IsRuleError(err error) bool {
	_, ok := err.(*RuleError)
	return ok
}
