package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
)

// ContextOption adjusts a sample context.
type ContextOption func(*domain.ProfessionalContext)

// WithObjectives replaces the current user's objectives.
func WithObjectives(objectives ...string) ContextOption {
	return func(pc *domain.ProfessionalContext) {
		pc.CurrentUser.Objectives = objectives
	}
}

// WithMeeting appends a meeting.
func WithMeeting(m domain.Meeting) ContextOption {
	return func(pc *domain.ProfessionalContext) {
		pc.Meetings = append(pc.Meetings, m)
	}
}

// WithoutMeetings drops every meeting.
func WithoutMeetings() ContextOption {
	return func(pc *domain.ProfessionalContext) {
		pc.Meetings = nil
		pc.CurrentUser.Meetings = nil
		for i := range pc.Colleagues {
			pc.Colleagues[i].Meetings = nil
		}
	}
}

var sampleColleagues = []struct{ name, job string }{
	{"Claire Martin", "Responsable logistique"},
	{"Hugo Bernard", "Chef d'atelier"},
	{"Inès Lefèvre", "Acheteuse"},
	{"Malik Diallo", "Technicien qualité"},
	{"Sophie Garnier", "Directrice financière"},
}

// SampleContext returns a contract-valid context for the week starting at
// monday: five colleagues, three objectives, ten meetings. Meeting m1 is a
// fixed Monday 10:00-11:00 commitment.
func SampleContext(monday time.Time, opts ...ContextOption) *domain.ProfessionalContext {
	pc := &domain.ProfessionalContext{
		CompanyType: "Coopérative agricole",
		CompanyName: "Les Vergers du Rhône",
		CurrentUser: domain.CurrentUser{
			ID:   "u1",
			Name: "Léa Petit",
			Job:  "Responsable de production",
			Objectives: []string{
				"Réduire les pertes post-récolte de 10 %",
				"Former deux saisonniers à la chaîne de tri",
				"Préparer l'audit de certification bio",
			},
		},
	}
	for i, c := range sampleColleagues {
		pc.Colleagues = append(pc.Colleagues, domain.Person{
			ID:   fmt.Sprintf("c%d", i+1),
			Name: c.name,
			Job:  c.job,
		})
	}

	day := func(offset, hour, minute int) string {
		d := monday.AddDate(0, 0, offset)
		return domain.FormatTimestamp(time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()))
	}

	pc.Meetings = []domain.Meeting{
		{ID: "m1", Title: "Comité de direction", Description: "Point hebdomadaire", StartTime: day(0, 10, 0), EndTime: day(0, 11, 0), Participants: []string{"u1", "c5"}, Location: "Salle du conseil"},
		{ID: "m2", Title: "Revue des pertes", Description: "Analyse des lots déclassés", StartTime: day(0, 14, 0), EndTime: day(0, 15, 0), IsFlexible: true, Participants: []string{"u1", "c1", "c4"}, Objective: pc.CurrentUser.Objectives[0], Location: "Bureau production"},
		{ID: "m3", Title: "Formation tri", Description: "Session pratique", StartTime: day(1, 9, 0), EndTime: day(1, 11, 0), IsFlexible: true, Participants: []string{"u1", "c2"}, Objective: pc.CurrentUser.Objectives[1], Location: "Atelier"},
		{ID: "m4", Title: "Appel fournisseur emballages", Description: "Négociation tarifs", StartTime: day(1, 14, 0), EndTime: day(1, 14, 30), IsFlexible: false, Participants: []string{"u1", "c3"}, Location: "Téléphone"},
		{ID: "m5", Title: "Préparation audit", Description: "Liste des pièces", StartTime: day(2, 10, 0), EndTime: day(2, 12, 0), IsFlexible: true, Participants: []string{"u1", "c4"}, Objective: pc.CurrentUser.Objectives[2], Location: "Bureau qualité"},
		{ID: "m6", Title: "Budget trimestriel", Description: "Arbitrages", StartTime: day(2, 15, 0), EndTime: day(2, 16, 0), IsFlexible: false, Participants: []string{"u1", "c5"}, Location: "Salle du conseil"},
		{ID: "m7", Title: "Tour de chaîne", Description: "Observation", StartTime: day(3, 8, 30), EndTime: day(3, 9, 30), IsFlexible: true, Participants: []string{"u1", "c2", "c1"}, Objective: pc.CurrentUser.Objectives[0], Location: "Atelier"},
		{ID: "m8", Title: "Point saisonniers", Description: "Retour d'expérience", StartTime: day(3, 16, 0), EndTime: day(3, 16, 45), IsFlexible: true, Participants: []string{"u1", "c2"}, Objective: pc.CurrentUser.Objectives[1], Location: "Atelier"},
		{ID: "m9", Title: "Visite de l'auditeur", Description: "Pré-audit", StartTime: day(4, 9, 0), EndTime: day(4, 12, 0), IsFlexible: false, Participants: []string{"u1", "c4", "c5"}, Objective: pc.CurrentUser.Objectives[2], Location: "Site"},
		{ID: "m10", Title: "Déjeuner d'équipe", Description: "Moment convivial", StartTime: day(4, 12, 30), EndTime: day(4, 13, 30), IsFlexible: true, Participants: []string{"u1", "c1", "c2", "c3"}, Location: "Cantine"},
	}

	for _, opt := range opts {
		opt(pc)
	}
	linkMeetings(pc)
	return pc
}

// linkMeetings rebuilds the person -> meeting back-references.
func linkMeetings(pc *domain.ProfessionalContext) {
	byPerson := make(map[string][]string)
	for _, m := range pc.Meetings {
		for _, p := range m.Participants {
			byPerson[p] = append(byPerson[p], m.ID)
		}
	}
	pc.CurrentUser.Meetings = byPerson[pc.CurrentUser.ID]
	for i := range pc.Colleagues {
		pc.Colleagues[i].Meetings = byPerson[pc.Colleagues[i].ID]
	}
}

// SampleContextJSON is SampleContext serialized the way a model returns it.
func SampleContextJSON(monday time.Time, opts ...ContextOption) string {
	data, err := json.Marshal(SampleContext(monday, opts...))
	if err != nil {
		panic(err)
	}
	return string(data)
}

// SampleConstraints returns the collector defaults with one preference.
func SampleConstraints() *domain.SchedulingConstraints {
	return &domain.SchedulingConstraints{
		Constraints: []domain.Constraint{
			{ID: "k1", Description: "Pas de réunions avant 10h le lundi"},
		},
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "18:00",
		MeetingDensity:    domain.DensityMedium,
	}
}

// SampleEvents returns a batch body for the week starting at monday. The
// first event reproduces the fixed m1 commitment.
func SampleEvents(monday time.Time) []domain.CalendarEvent {
	at := func(offset, hour, minute int) string {
		d := monday.AddDate(0, 0, offset)
		return domain.FormatTimestamp(time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()))
	}
	return []domain.CalendarEvent{
		{
			Title:        "Comité de direction",
			Description:  "Point hebdomadaire",
			StartTime:    at(0, 10, 0),
			EndTime:      at(0, 11, 0),
			Participants: []domain.EventParticipant{{Name: "Léa Petit", Role: "Responsable de production"}, {Name: "Sophie Garnier", Role: "Directrice financière"}},
			Location:     "Salle du conseil",
		},
		{
			Title:        "Analyse des pertes",
			Description:  "Lié à l'Objectif 1: Réduire les pertes post-récolte de 10 %",
			StartTime:    at(0, 14, 0),
			EndTime:      at(0, 15, 30),
			Participants: []domain.EventParticipant{{Name: "Claire Martin", Role: "Responsable logistique"}},
			Location:     "Bureau production",
		},
		{
			Title:       "Formation saisonniers",
			Description: "Lié à l'Objectif 2: Former deux saisonniers. Peut être déplacé si besoin.",
			StartTime:   at(1, 9, 0),
			EndTime:     at(1, 11, 0),
			Location:    "Atelier",
		},
		{
			Title:       "Dossier certification",
			Description: "Lié à l'Objectif 3: Préparer l'audit de certification bio",
			StartTime:   at(2, 10, 0),
			EndTime:     at(2, 12, 0),
			Location:    "Bureau qualité",
		},
		{
			Title:       "Pause déjeuner",
			Description: "Temps personnel",
			StartTime:   at(2, 12, 0),
			EndTime:     at(2, 13, 0),
		},
	}
}

// SampleBatch wraps SampleEvents in a batch.
func SampleBatch(monday time.Time) *domain.Batch {
	return &domain.Batch{
		ID:          "batch-1",
		GeneratedAt: monday.AddDate(0, 0, -3),
		Events:      SampleEvents(monday),
	}
}

// EventsJSON serializes events inside the {"events": [...]} envelope.
func EventsJSON(events []domain.CalendarEvent) string {
	data, err := json.Marshal(map[string]any{"events": events})
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Monday returns a fixed Monday (2026-03-02) at midnight in loc.
func Monday(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(2026, time.March, 2, 0, 0, 0, 0, loc)
}
