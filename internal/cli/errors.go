package cli

import "fmt"

// scriptError points at the offending event of a simulate script.
type scriptError struct {
	Index  int
	Reason string
}

func (e scriptError) Error() string {
	return fmt.Sprintf("script event %d: %s", e.Index, e.Reason)
}
