// Package models defines the note data model shared by the phone and watch
// processes, and the snapshot codec used for the shared blob.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note is a user-authored feed post. ID is the backend's integer post id;
// notes created locally and not yet uploaded carry a negative id assigned by
// the store, so they can never collide with server ids.
//
// Invariants:
//   - Scheduled implies ScheduledAt != nil and Private (a scheduled note is
//     never publicly visible before its time).
//   - CommentCount == len(Comments) whenever comments are materialized;
//     remote-fetched notes may carry a count without the comments themselves.
type Note struct {
	ID           int64        `json:"id"`
	Author       string       `json:"author"`
	CreatedAt    time.Time    `json:"created_at"`
	Title        string       `json:"title"`
	Body         string       `json:"body"`
	Hashtags     []string     `json:"hashtags,omitempty"`
	LikeCount    int          `json:"like_count"`
	CommentCount int          `json:"comment_count"`
	Liked        bool         `json:"liked"`
	Bookmarked   bool         `json:"bookmarked"`
	Private      bool         `json:"private"`
	Scheduled    bool         `json:"scheduled"`
	ScheduledAt  *time.Time   `json:"scheduled_at,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	Comments     []Comment    `json:"comments,omitempty"`
}

// ScheduledDue reports whether the note is scheduled and its publish time has
// passed.
func (n *Note) ScheduledDue(now time.Time) bool {
	return n.Scheduled && n.ScheduledAt != nil && !n.ScheduledAt.After(now)
}

// Attachment is a binary payload owned by exactly one note. Immutable once
// created.
type Attachment struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttachment builds an attachment with a fresh id.
func NewAttachment(fileName, mimeType string, payload []byte, createdAt time.Time) Attachment {
	return Attachment{
		ID:        uuid.New(),
		FileName:  fileName,
		MimeType:  mimeType,
		Payload:   payload,
		CreatedAt: createdAt,
	}
}

// Comment is a reply attached to a note. LocallyNew is a transient UI hint
// and is never persisted.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	Text       string    `json:"text"`
	LocallyNew bool      `json:"-"`
}

// NewComment builds a comment with a fresh id, marked as locally new.
func NewComment(author, text string, createdAt time.Time) Comment {
	return Comment{
		ID:         uuid.New(),
		Author:     author,
		CreatedAt:  createdAt,
		Text:       text,
		LocallyNew: true,
	}
}

// FormatCount renders a count the way both UIs display it: 999 stays "999",
// anything from 1000 up becomes "1.0K" style.
func FormatCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000.0)
	}
	return fmt.Sprintf("%d", count)
}
