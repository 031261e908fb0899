package core

// IDGenerator produces unique numeric identifiers. The values double as
// bank-side order ids, so they must fit in a signed 63-bit integer.
type IDGenerator interface {
	NextID() uint64
}
