package domain

import "fmt"

// DestinationKind tags the variant held by a Destination
type DestinationKind int

const (
	DestDefault DestinationKind = iota
	DestList
	DestProject
	DestArea
)

// Destination is exactly one placement for an item, or none (Default)
type Destination struct {
	Kind DestinationKind
	ID   string
}

// Default leaves the item in its default container
var Default = Destination{Kind: DestDefault}

func ListDestination(id string) Destination    { return Destination{Kind: DestList, ID: id} }
func ProjectDestination(id string) Destination { return Destination{Kind: DestProject, ID: id} }
func AreaDestination(id string) Destination    { return Destination{Kind: DestArea, ID: id} }

// IsDefault reports whether no placement was resolved
func (d Destination) IsDefault() bool {
	return d.Kind == DestDefault
}

// Patch returns the facet writes for this destination: the chosen facet is
// set and the other two are cleared. Default returns an empty patch
func (d Destination) Patch() Patch {
	if d.IsDefault() {
		return Patch{}
	}
	list, project, area := "", "", ""
	switch d.Kind {
	case DestList:
		list = d.ID
	case DestProject:
		project = d.ID
	case DestArea:
		area = d.ID
	}
	return Patch{ListID: &list, ProjectID: &project, AreaID: &area}
}

func (d Destination) String() string {
	switch d.Kind {
	case DestList:
		return fmt.Sprintf("list(%s)", d.ID)
	case DestProject:
		return fmt.Sprintf("project(%s)", d.ID)
	case DestArea:
		return fmt.Sprintf("area(%s)", d.ID)
	default:
		return "default"
	}
}
