package todos

import (
	"time"

	"github.com/pbaille/things/internal/domain"
)

// MapObject converts a store object into its Record form
func MapObject(o domain.Object) *Record {
	return &Record{
		ID:               o.ID,
		Type:             string(o.Kind),
		Name:             o.Name,
		Notes:            o.Notes,
		Tags:             ParseTags(o.TagNames),
		Status:           string(o.Status),
		ActivationDate:   formatDate(o.ActivationDate),
		DueDate:          formatDate(o.DueDate),
		CompletionDate:   formatDate(o.CompletedAt),
		CreationDate:     o.CreatedAt.Format(time.RFC3339),
		ModificationDate: o.ModifiedAt.Format(time.RFC3339),
		ListID:           o.ListID,
		ProjectID:        o.ProjectID,
		AreaID:           o.AreaID,
	}
}

// Summarize keeps only id, name and status
func Summarize(o domain.Object) Summary {
	return Summary{ID: o.ID, Name: o.Name, Status: string(o.Status)}
}
