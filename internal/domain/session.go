package domain

import "context"

// Session is one browsing session's mutable state: the cart and the
// committed filter criteria. Everything else in a view derives from
// these two values plus the catalog snapshot.
type Session struct {
	ID       string         `json:"id"`
	Cart     Cart           `json:"cart"`
	Criteria FilterCriteria `json:"criteria"`
}

// SessionRepository stores per-session browse state. Implementations
// must hand out copies: mutating a returned session has no effect until
// it is saved back.
type SessionRepository interface {
	GetOrCreate(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}
