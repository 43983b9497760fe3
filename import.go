package cashbook

import "fmt"

// ImportResult counts the rows of an import.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"` // rows identical to a recorded purchase
}

func (r ImportResult) String() string {
	return fmt.Sprintf("%d inserted, %d skipped", r.Inserted, r.Skipped)
}
