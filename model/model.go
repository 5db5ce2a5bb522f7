// Package model contains abstract data models.
package model

import "time"

// Commit is a single commit as read from version control. It is immutable
// once read: sign-off validation only inspects it.
type Commit struct {
	ID             string `json:"commit"`
	Author         string
	AuthorEmail    string
	AuthorDate     time.Time
	Committer      string
	CommitterEmail string
	CommitterDate  time.Time
	Subject        string
	Body           string
}
