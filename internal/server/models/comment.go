package models

import "time"

// Comment is an immutable note on a task. Content is stored exactly as
// submitted; there is no edit or delete.
type Comment struct {
	ID        string
	TaskID    string
	UserID    string
	Content   string
	CreatedAt time.Time

	// Author is the comment's user record at read time, populated on load.
	Author *User
}
