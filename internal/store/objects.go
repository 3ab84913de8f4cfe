package store

import (
	"time"

	"github.com/pbaille/things/internal/domain"
)

// applyPatch writes p into o the way the task application does: changing
// status stamps or clears the completion date
func applyPatch(o *domain.Object, p domain.Patch, now time.Time) {
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
	if p.TagNames != nil {
		o.TagNames = *p.TagNames
	}
	if p.Status != nil && *p.Status != o.Status {
		o.Status = *p.Status
		if o.Status == domain.StatusOpen {
			o.CompletedAt = nil
		} else {
			t := now
			o.CompletedAt = &t
		}
	}
	if p.DueDate != nil {
		t := *p.DueDate
		o.DueDate = &t
	}
	if p.ClearDueDate {
		o.DueDate = nil
	}
	if p.ListID != nil {
		o.ListID = *p.ListID
	}
	if p.ProjectID != nil {
		o.ProjectID = *p.ProjectID
	}
	if p.AreaID != nil {
		o.AreaID = *p.AreaID
	}
	o.ModifiedAt = now
}

// reorderAfter returns ids with itemID removed and reinserted right after
// anchorID. If the anchor is missing the item goes last
func reorderAfter(ids []string, itemID, anchorID string) []string {
	out := make([]string, 0, len(ids)+1)
	placed := false
	for _, id := range ids {
		if id == itemID {
			continue
		}
		out = append(out, id)
		if id == anchorID {
			out = append(out, itemID)
			placed = true
		}
	}
	if !placed {
		out = append(out, itemID)
	}
	return out
}

// movable reports whether kind can be placed, scheduled or moved
func movable(kind domain.Kind) bool {
	return kind == domain.KindToDo || kind == domain.KindProject
}
