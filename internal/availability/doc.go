// Package availability turns raw busy intervals from the calendar
// gateway into bounded, non-overlapping bookable slots.
//
// Slot generation is pure and deterministic: a query window plus a
// set of busy intervals always yields the same ordered slot list.
// Working hours, weekday-only scheduling and the slot duration are
// clinic policy applied here, not calendar state.
package availability
