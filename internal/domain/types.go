package domain

import "time"

// Kind identifies which collection of the object graph an Object lives in
type Kind string

const (
	KindToDo    Kind = "to-do"
	KindProject Kind = "project"
	KindArea    Kind = "area"
	KindList    Kind = "list"
)

// Status is the lifecycle state of a to-do or project
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Built-in list identifiers. These are fixed by the task application
const (
	InboxListID    = "TMInboxListSource"
	TodayListID    = "TMTodayListSource"
	AnytimeListID  = "TMNextListSource"
	UpcomingListID = "TMCalendarListSource"
	SomedayListID  = "TMSomedayListSource"
	LogbookListID  = "TMLogbookListSource"
)

// BuiltinList is a fixed container of the task application
type BuiltinList struct {
	ID   string
	Name string
}

// BuiltinLists in display order
var BuiltinLists = []BuiltinList{
	{ID: InboxListID, Name: "Inbox"},
	{ID: TodayListID, Name: "Today"},
	{ID: AnytimeListID, Name: "Anytime"},
	{ID: UpcomingListID, Name: "Upcoming"},
	{ID: SomedayListID, Name: "Someday"},
	{ID: LogbookListID, Name: "Logbook"},
}

// WritableLists are the only built-in lists that accept direct placement
var WritableLists = []string{TodayListID, InboxListID}

// IsWritableList reports whether items may be placed directly into the list
func IsWritableList(id string) bool {
	for _, w := range WritableLists {
		if w == id {
			return true
		}
	}
	return false
}

// Object is a snapshot of an item in the external object graph.
// At most one of ListID, ProjectID and AreaID is set
type Object struct {
	ID             string     `json:"id"`
	Kind           Kind       `json:"kind"`
	Name           string     `json:"name"`
	Notes          string     `json:"notes,omitempty"`
	TagNames       string     `json:"tag_names,omitempty"`
	Status         Status     `json:"status,omitempty"`
	ActivationDate *time.Time `json:"activation_date,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ListID         string     `json:"list_id,omitempty"`
	ProjectID      string     `json:"project_id,omitempty"`
	AreaID         string     `json:"area_id,omitempty"`
	Position       int64      `json:"position"`
	CreatedAt      time.Time  `json:"created_at"`
	ModifiedAt     time.Time  `json:"modified_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// Patch lists attribute writes for ObjectStore.Update. Nil fields are left
// untouched. For placement facets an empty string clears the facet, and
// ClearDueDate sets the due date to none
type Patch struct {
	Name         *string
	Notes        *string
	TagNames     *string
	Status       *Status
	DueDate      *time.Time
	ClearDueDate bool
	ListID       *string
	ProjectID    *string
	AreaID       *string
}

// MoveTarget is where ObjectStore.Move repositions an item: into a list,
// or immediately after a sibling
type MoveTarget struct {
	ListID  string
	AfterID string
}

// IsEmpty reports whether the patch writes nothing
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Notes == nil && p.TagNames == nil && p.Status == nil &&
		p.DueDate == nil && !p.ClearDueDate &&
		p.ListID == nil && p.ProjectID == nil && p.AreaID == nil
}
