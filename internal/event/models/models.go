package models

import (
	"time"

	consentmodels "consentd/internal/consent/models"
	id "consentd/pkg/domain"
)

// Event is an immutable record of one or more consent assertions made by a
// user at a point in time. Events are only ever created or bulk-deleted via
// the user cascade; no update operation exists.
//
// Events belonging to one user form a total order by (CreatedAt, Seq). Seq is
// assigned atomically by the store at append time because wall-clock
// timestamps may collide.
type Event struct {
	ID         id.EventID
	UserID     id.UserID
	Seq        int64
	CreatedAt  time.Time
	Assertions []consentmodels.Assertion
}
