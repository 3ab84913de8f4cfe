package todos

import (
	"context"

	"github.com/pbaille/things/internal/domain"
)

// placeUnderHeading moves the item into the project, just after the first
// project item named heading. It runs whatever destination won placement.
// The project's items are read right before the move, so the anchor index
// reflects the current order
func (s *Service) placeUnderHeading(ctx context.Context, itemID, projectID, heading string) outcome {
	if heading == "" || projectID == "" {
		return done()
	}
	if _, err := s.store.Get(ctx, domain.KindProject, projectID); err != nil {
		return skipped("project %s: %v", projectID, err)
	}
	items, err := s.store.ProjectToDos(ctx, projectID)
	if err != nil {
		return skipped("project %s items: %v", projectID, err)
	}

	anchor := -1
	for i, it := range items {
		if it.Name == heading && it.ID != itemID {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return skipped("no heading %q in project %s", heading, projectID)
	}

	if err := s.store.Move(ctx, itemID, domain.MoveTarget{AfterID: items[anchor].ID}); err != nil {
		return skipped("move under heading %q: %v", heading, err)
	}
	return done()
}
