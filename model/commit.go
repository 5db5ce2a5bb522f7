package model

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// Message reconstructs the full commit message from the subject and body.
// Trailers live at the end of the body, but a single-line message can also
// be a trailer, so callers scan the whole thing.
func (c *Commit) Message() string {
	if c.Body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + c.Body
}
