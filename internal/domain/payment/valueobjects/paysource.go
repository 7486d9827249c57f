package valueobjects

import "strings"

// PaySource identifies who settled a payment: "free" or a processor id.
// Processor ids are opaque.
type PaySource string

const PaySourceFree PaySource = "free"

func NewPaySource(id string) PaySource {
	return PaySource(strings.ToLower(strings.TrimSpace(id)))
}

func (s PaySource) IsFree() bool {
	return s == PaySourceFree
}

func (s PaySource) String() string {
	return string(s)
}
