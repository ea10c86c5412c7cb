// Package profile stores patient profiles and call history in Redis.
//
// Profiles are keyed by a generated user ID and indexed by their
// normalized E.164 phone number, so an incoming call can be matched to
// a returning patient before the conversation starts. The store
// degrades gracefully: when Redis is not configured every lookup
// reports ErrUnavailable and the agent simply treats the caller as
// unknown.
package profile
