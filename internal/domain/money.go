package domain

import "fmt"

// Cents is an exact monetary amount in euro cents. All price arithmetic is
// integer arithmetic; binary floats are never used for money.
type Cents int64

// String formats the amount with exactly two decimal digits, e.g. "6.50".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
