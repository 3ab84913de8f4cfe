package todos

// CreateRequest describes a new to-do. Only Name is required
type CreateRequest struct {
	Name           string   `json:"name"`
	Notes          string   `json:"notes,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	ActivationDate string   `json:"activation_date,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
	ListID         string   `json:"list_id,omitempty"`
	ProjectID      string   `json:"project_id,omitempty"`
	AreaID         string   `json:"area_id,omitempty"`
	// ListTitle is matched against writable lists, then projects, then areas
	ListTitle string `json:"list_title,omitempty"`
	// Heading is only honored together with ProjectID, and moves the to-do
	// into that project even when another destination won placement. A
	// project matched through ListTitle does not enable heading placement
	Heading string `json:"heading,omitempty"`
}

// UpdateRequest describes changes to an existing to-do or project.
// Nil fields are left untouched; a non-nil empty value clears the field
type UpdateRequest struct {
	ID             string    `json:"id"`
	Name           *string   `json:"name,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	ActivationDate *string   `json:"activation_date,omitempty"`
	DueDate        *string   `json:"due_date,omitempty"`
	ListID         string    `json:"list_id,omitempty"`
	ProjectID      string    `json:"project_id,omitempty"`
	AreaID         string    `json:"area_id,omitempty"`
	Completed      bool      `json:"completed,omitempty"`
	Canceled       bool      `json:"canceled,omitempty"`
}

// ListFilter narrows ListAll. IncludeItems defaults to true when nil
type ListFilter struct {
	ProjectUUID  string `json:"project_uuid,omitempty"`
	IncludeItems *bool  `json:"include_items,omitempty"`
}

func (f ListFilter) includeItems() bool {
	return f.IncludeItems == nil || *f.IncludeItems
}

// Listed is an entry returned by ListAll: a *Record or a Summary
type Listed interface {
	listed()
}

// Record is the mapped form of a to-do or project
type Record struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Name             string   `json:"name"`
	Notes            string   `json:"notes"`
	Tags             []string `json:"tags"`
	Status           string   `json:"status"`
	ActivationDate   *string  `json:"activation_date"`
	DueDate          *string  `json:"due_date"`
	CompletionDate   *string  `json:"completion_date"`
	CreationDate     string   `json:"creation_date"`
	ModificationDate string   `json:"modification_date"`
	ListID           string   `json:"list_id,omitempty"`
	ProjectID        string   `json:"project_id,omitempty"`
	AreaID           string   `json:"area_id,omitempty"`
}

// Summary is the reduced form used when ListAll skips full mapping
type Summary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (*Record) listed() {}
func (Summary) listed() {}
