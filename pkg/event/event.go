package event

import (
	"fmt"
	"time"
)

// Event is a scheduled occurrence on the calendar.
type Event struct {
	// ID is assigned by the store at creation and never changes.
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"startTime"`
	End         time.Time `json:"endTime"`
	Description string    `json:"description,omitempty"`
}

func New(title string, start, end time.Time, description string) *Event {
	return &Event{
		Title:       title,
		Start:       start,
		End:         end,
		Description: description,
	}
}

// Patch holds optional replacement values for an event. Nil fields are left
// untouched when the patch is applied.
type Patch struct {
	Title       *string
	Start       *time.Time
	End         *time.Time
	Description *string
}

// Apply merges the patch into e in place.
func (p Patch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Start == nil && p.End == nil && p.Description == nil
}

func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// OnDay reports whether the event starts on the given calendar day, compared
// in local time.
func (e *Event) OnDay(day time.Time) bool {
	y1, m1, d1 := e.Start.Local().Date()
	y2, m2, d2 := day.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (e *Event) String() string {
	return fmt.Sprintf("%s (%s - %s)",
		e.Title,
		e.Start.Local().Format("2006-01-02 15:04"),
		e.End.Local().Format("2006-01-02 15:04"))
}
