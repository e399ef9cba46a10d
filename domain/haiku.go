package domain

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
	"time"
)

// Haiku is the three lines of a poem, stored verbatim.
type Haiku struct {
	Line1 string
	Line2 string
	Line3 string
}

func (h Haiku) Lines() [3]string {
	return [3]string{h.Line1, h.Line2, h.Line3}
}

func (h Haiku) String() string {
	return strings.Join([]string{h.Line1, h.Line2, h.Line3}, "\n")
}

func (h Haiku) Empty() bool {
	return strings.TrimSpace(h.Line1) == "" &&
		strings.TrimSpace(h.Line2) == "" &&
		strings.TrimSpace(h.Line3) == ""
}

type Post struct {
	Id         uuid.UUID
	AuthorId   uuid.UUID
	AuthorName string
	Haiku      Haiku
	Location   string
	CreatedAt  time.Time
}

func (p *Post) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tAuthor: %s \n\tHaiku: %s \n\tCreatedAt: %s)", p.Id, p.AuthorName, p.Haiku, p.CreatedAt)
}

// Day buckets the posts published on one calendar date, ordered by arrival.
type Day struct {
	Date  time.Time
	Posts []Post
}

// SameDate reports whether t falls on this day's calendar date.
func (d Day) SameDate(t time.Time) bool {
	dy, dm, dd := d.Date.Date()
	ty, tm, td := t.Date()
	return dy == ty && dm == tm && dd == td
}
