package domain

import "time"

// EventParticipant is a denormalized participant on a generated event.
type EventParticipant struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CalendarEvent is one generated calendar entry. The objective it serves is
// conveyed only through a textual marker ("Objectif N") in Description.
type CalendarEvent struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	StartTime    string             `json:"startTime"`
	EndTime      string             `json:"endTime"`
	Participants []EventParticipant `json:"participants"`
	Location     string             `json:"location"`
}

// Batch is one complete set of events produced by a single generation call.
// Batches are replaced, never merged.
type Batch struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Events      []CalendarEvent `json:"events"`
}

// CalendarRequest is the structured input to calendar generation.
type CalendarRequest struct {
	UserRole            string         `json:"userRole"`
	StartDate           string         `json:"startDate"`
	EndDate             string         `json:"endDate"`
	WorkingHoursStart   string         `json:"workingHoursStart"`
	WorkingHoursEnd     string         `json:"workingHoursEnd"`
	MeetingPreferences  []string       `json:"meetingPreferences"`
	ExistingCommitments []Meeting      `json:"existingCommitments"`
	MeetingDensity      MeetingDensity `json:"meetingDensity"`
	Objectives          []string       `json:"objectives"`
}
