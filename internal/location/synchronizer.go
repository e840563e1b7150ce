package location

import (
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// HistoryMode tells the navigation subsystem how to apply an Update.
type HistoryMode string

const (
	// ModePush adds a history entry so back-navigation can undo the change.
	ModePush HistoryMode = "push"
	// ModeReplace overwrites the current entry; used for per-keystroke
	// search edits so typing does not spam the history stack.
	ModeReplace HistoryMode = "replace"
	// ModeNone means the location must not be written at all.
	ModeNone HistoryMode = "none"
)

// Update is the synchronizer's instruction to the navigation subsystem.
// Query is always the canonical encoding of the committed criteria;
// Mode says whether (and how) to persist it.
type Update struct {
	Query string      `json:"query"`
	Mode  HistoryMode `json:"mode"`
}

// Synchronizer keeps filter criteria and the persisted location string
// mutually consistent. Every transition takes the current committed
// criteria and returns the next criteria plus a location directive, so
// a commit and its location write are one atomic step from the caller's
// point of view.
//
// The no-loop invariant lives in ExternalChange: a commit that
// originates from the location never produces a write back to the
// location. The guard is a plain value comparison, not a lock; there is
// no observable intermediate state.
type Synchronizer struct {
	log *logrus.Logger
}

func NewSynchronizer(logger *logrus.Logger) *Synchronizer {
	return &Synchronizer{log: logger}
}

// SetCategory commits a user category edit. Category changes push a new
// history entry so that navigating back un-filters the category.
func (s *Synchronizer) SetCategory(current domain.FilterCriteria, value string) (domain.FilterCriteria, Update) {
	next := current.WithCategory(value)
	s.log.WithFields(logrus.Fields{"category": value, "mode": ModePush}).Debug("Location sync: category edit")
	return next, Update{Query: Encode(next), Mode: ModePush}
}

// SetSearchText commits a user search edit. Search edits arrive per
// keystroke, so they replace the current history entry.
func (s *Synchronizer) SetSearchText(current domain.FilterCriteria, value string) (domain.FilterCriteria, Update) {
	next := current.WithSearchText(value)
	s.log.WithFields(logrus.Fields{"search": value, "mode": ModeReplace}).Debug("Location sync: search edit")
	return next, Update{Query: Encode(next), Mode: ModeReplace}
}

// ExternalChange reconciles a location that changed from outside
// (back/forward navigation). The parsed criteria are committed only if
// they differ from the current ones, and the location is never written:
// the navigation subsystem already holds this state, and writing it
// back is what turns the two-way binding into an infinite loop.
//
// The returned bool reports whether a commit happened.
func (s *Synchronizer) ExternalChange(current domain.FilterCriteria, rawQuery string) (domain.FilterCriteria, Update, bool) {
	next := Parse(rawQuery)
	if next == current {
		return current, Update{Query: Encode(current), Mode: ModeNone}, false
	}
	s.log.WithFields(logrus.Fields{"category": next.Category, "search": next.SearchText}).Debug("Location sync: external change committed")
	return next, Update{Query: Encode(next), Mode: ModeNone}, true
}

// Reset atomically clears criteria and location in one step. Firing the
// reset signal again while already clear commits nothing and writes
// nothing, so consecutive resets collapse into one transition.
func (s *Synchronizer) Reset(current domain.FilterCriteria) (domain.FilterCriteria, Update) {
	if current.IsZero() {
		return current, Update{Query: "", Mode: ModeNone}
	}
	s.log.Debug("Location sync: reset")
	return domain.FilterCriteria{}, Update{Query: "", Mode: ModePush}
}
