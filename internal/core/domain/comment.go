package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a remark attached to an issue. Its identifier is a random
// UUID rather than a sequential integer so valid ids cannot be guessed
// by enumeration.
type Comment struct {
	ID          uuid.UUID `json:"uuid"`
	IssueID     int64     `json:"issue"`
	AuthorID    int64     `json:"author"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_time"`
}
