package domain

import "fmt"

// Status is the lifecycle of a single game.
type Status int

const (
	InProgress Status = iota
	EndedWin
	EndedLoss
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case EndedWin:
		return "won"
	default:
		return "lost"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "in_progress":
		*s = InProgress
	case "won":
		*s = EndedWin
	case "lost":
		*s = EndedLoss
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// Ended reports whether the status is terminal.
func (s Status) Ended() bool { return s != InProgress }

// Action is what a hint asks the player to do with its cells.
type Action int

const (
	ActionReveal Action = iota // cells are safe to open
	ActionFlag                 // cells are certainly bombs
)

func (a Action) String() string {
	if a == ActionFlag {
		return "flag"
	}
	return "reveal"
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Action) UnmarshalText(b []byte) error {
	switch string(b) {
	case "reveal":
		*a = ActionReveal
	case "flag":
		*a = ActionFlag
	default:
		return fmt.Errorf("unknown action %q", b)
	}
	return nil
}
