package model

import "github.com/oklog/ulid/v2"

// NewEntryID returns an identifier for experience/education/project
// entries: a millisecond timestamp followed by random bits. Entry ids are
// only editing keys, never storage keys.
func NewEntryID() string {
	return ulid.Make().String()
}
