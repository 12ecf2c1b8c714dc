package workout

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Record is one logged exercise session. Id and CreatedAt are assigned
// when the record is persisted and never change afterwards.
type Record struct {
	ID        string    `json:"id"`
	Exercise  string    `json:"exercise"`
	Sets      *int      `json:"sets,omitempty"`
	Reps      *int      `json:"reps,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidationError reports a rejected create payload. The message is
// safe to return to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ParseNew decodes and validates a create payload. It returns a Record
// with no id and no timestamp; the caller assigns both at persistence
// time.
func ParseNew(body []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return Record{}, &ValidationError{Msg: "invalid JSON body"}
	}
	rec.ID = ""
	rec.CreatedAt = time.Time{}
	rec.Exercise = strings.TrimSpace(rec.Exercise)
	if rec.Exercise == "" {
		return Record{}, &ValidationError{Msg: "exercise name is required"}
	}
	if rec.Sets != nil && *rec.Sets < 0 {
		return Record{}, &ValidationError{Msg: "sets must be non-negative"}
	}
	if rec.Reps != nil && *rec.Reps < 0 {
		return Record{}, &ValidationError{Msg: "reps must be non-negative"}
	}
	if rec.Weight != nil && *rec.Weight < 0 {
		return Record{}, &ValidationError{Msg: "weight must be non-negative"}
	}
	return rec, nil
}

var motivationalMessages = []string{
	"Great workout! Keep pushing!",
	"You're crushing it! Consistency is key!",
	"Workout logged! Your dedication is impressive!",
	"Another step closer to your goals! Keep it up!",
	"Fantastic effort! Your future self will thank you!",
	"Beast mode activated! Well done!",
	"Progress over perfection! You're doing amazing!",
	"Every rep counts! Great job today!",
}

// Summary renders the human-readable notification text for a persisted
// record: a motivational line followed by the workout details.
func (r Record) Summary() string {
	var b strings.Builder
	b.WriteString(motivationalMessages[rand.Intn(len(motivationalMessages))])
	b.WriteString("\n\nWorkout Details:\n")
	fmt.Fprintf(&b, "Exercise: %s\n", r.Exercise)
	fmt.Fprintf(&b, "Sets: %s\n", orNA(r.Sets))
	fmt.Fprintf(&b, "Reps: %s\n", orNA(r.Reps))
	if r.Weight != nil {
		fmt.Fprintf(&b, "Weight: %g lbs\n", *r.Weight)
	} else {
		b.WriteString("Weight: N/A\n")
	}
	fmt.Fprintf(&b, "Date: %s\n", r.CreatedAt.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "Time: %s\n", r.CreatedAt.UTC().Format("15:04:05"))
	if r.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", r.Notes)
	}
	return b.String()
}

func orNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}
