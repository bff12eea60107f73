package domain

// Meeting is a pre-existing commitment fabricated as part of a professional
// context. Fixed meetings (IsFlexible == false) must reappear unchanged in a
// generated calendar.
type Meeting struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	IsFlexible   bool     `json:"isFlexible"`
	Participants []string `json:"participants"`
	Objective    string   `json:"objective"`
	Location     string   `json:"location"`
}

// Person is a colleague. Meetings holds back-references to Meeting IDs.
type Person struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Job      string   `json:"job"`
	Meetings []string `json:"meetings"`
}

// CurrentUser is the person the calendar is planned for.
type CurrentUser struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Job        string   `json:"job"`
	Meetings   []string `json:"meetings"`
	Objectives []string `json:"objectives"`
}

// ObjectiveCount is the number of objectives a current user carries.
const ObjectiveCount = 3
