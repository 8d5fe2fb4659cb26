// Package messages implements the bounded message log shown below the
// dashboard grid. The log is the only scrolling region on screen: old
// entries fall off the front once capacity is reached.
package messages

import (
	"time"

	"gitlab.com/tinyland/lab/dashgrid/internal/format"
)

// DefaultCapacity is the number of entries retained when no capacity is
// configured.
const DefaultCapacity = 100

// Entry is one timestamped log line.
type Entry struct {
	Time time.Time
	Text string
}

// Format renders the entry as "HH:MM:SS text".
func (e Entry) Format() string {
	return format.FormatClock(e.Time) + " " + e.Text
}

// Log is a bounded, append-only message window.
type Log struct {
	entries  []Entry
	capacity int
}

// NewLog creates a log retaining at most capacity entries. Non-positive
// capacities fall back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Add appends a message stamped with the current time.
func (l *Log) Add(text string) {
	l.AddAt(time.Now(), text)
}

// AddAt appends a message with an explicit timestamp.
func (l *Log) AddAt(t time.Time, text string) {
	l.entries = append(l.entries, Entry{Time: t, Text: text})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Window returns the newest n entries, oldest first. It returns fewer when
// the log holds fewer.
func (l *Log) Window(n int) []Entry {
	if n <= 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return l.entries[len(l.entries)-n:]
}

// Clear discards all entries.
func (l *Log) Clear() {
	l.entries = nil
}
