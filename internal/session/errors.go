package session

import "errors"

// ErrSessionNotFound indicates an append was issued for a conversation id
// that has no session. Callers must resolve the session via GetOrCreate first.
var ErrSessionNotFound = errors.New("session not found")
