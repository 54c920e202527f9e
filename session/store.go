package session

// Store persists the single console session across process restarts.
//
// Save rejects incomplete sessions so a reader can never observe a partial
// one. Load never fails: malformed or missing persisted data reads as absent,
// which fails safe to logged-out rather than to a crash.
type Store interface {
	Save(Session) error
	Load() (Session, bool)
	Clear() error
}
