package timeutil

import "fmt"

// UnrecognizedDateError reports a date token the resolver does not know.
// The token is kept verbatim for user-facing diagnostics.
type UnrecognizedDateError struct {
	Token string
}

func (e *UnrecognizedDateError) Error() string {
	return fmt.Sprintf("unrecognized date token %q", e.Token)
}

// AmbiguousTimeError reports a clock-time token that cannot be resolved to a
// unique time of day, e.g. a bare hour with no am/pm marker.
type AmbiguousTimeError struct {
	Token  string
	Reason string
}

func (e *AmbiguousTimeError) Error() string {
	return fmt.Sprintf("ambiguous time %q: %s", e.Token, e.Reason)
}

// InvalidLocalTimeError reports a wall-clock time that does not exist in the
// target zone (a DST gap). The resolver refuses to shift it silently.
type InvalidLocalTimeError struct {
	Wall string
	Zone string
}

func (e *InvalidLocalTimeError) Error() string {
	return fmt.Sprintf("local time %s does not exist in %s", e.Wall, e.Zone)
}

// AmbiguousLocalizationError reports conflicting explicit offsets supplied
// for a single edit, where no precedence rule can pick one.
type AmbiguousLocalizationError struct {
	Start string
	End   string
}

func (e *AmbiguousLocalizationError) Error() string {
	return fmt.Sprintf("conflicting explicit offsets: start %s vs end %s", e.Start, e.End)
}
