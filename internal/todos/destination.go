package todos

import (
	"context"
	"log/slog"

	"github.com/pbaille/things/internal/domain"
)

// placementRefs are the destination fields of a request, in precedence order
type placementRefs struct {
	ListID    string
	ProjectID string
	AreaID    string
	ListTitle string
}

// resolveDestination picks at most one destination. References are tried
// in precedence order and the first one that resolves wins; a reference that
// fails its lookup is logged and the next present one is tried
func (s *Service) resolveDestination(ctx context.Context, log *slog.Logger, refs placementRefs) domain.Destination {
	candidates := []struct {
		step    string
		present bool
		resolve func() (domain.Destination, outcome)
	}{
		{"list_id", refs.ListID != "", func() (domain.Destination, outcome) { return s.resolveList(ctx, refs.ListID) }},
		{"project_id", refs.ProjectID != "", func() (domain.Destination, outcome) {
			return s.resolveByID(ctx, domain.KindProject, refs.ProjectID, domain.ProjectDestination)
		}},
		{"area_id", refs.AreaID != "", func() (domain.Destination, outcome) {
			return s.resolveByID(ctx, domain.KindArea, refs.AreaID, domain.AreaDestination)
		}},
		{"list_title", refs.ListTitle != "", func() (domain.Destination, outcome) { return s.resolveTitle(ctx, log, refs.ListTitle) }},
	}

	for _, c := range candidates {
		if !c.present {
			continue
		}
		dest, o := c.resolve()
		if o.applied() {
			return dest
		}
		o.report(log, c.step)
	}
	return domain.Default
}

func (s *Service) resolveList(ctx context.Context, id string) (domain.Destination, outcome) {
	if !domain.IsWritableList(id) {
		return domain.Default, skipped("list %s is not writable", id)
	}
	return s.resolveByID(ctx, domain.KindList, id, domain.ListDestination)
}

func (s *Service) resolveByID(ctx context.Context, kind domain.Kind, id string, dest func(string) domain.Destination) (domain.Destination, outcome) {
	if _, err := s.store.Get(ctx, kind, id); err != nil {
		return domain.Default, skipped("%s %s: %v", kind, id, err)
	}
	return dest(id), done()
}

// titleStrategy searches one collection for an exact name match
type titleStrategy struct {
	kind   domain.Kind
	accept func(domain.Object) bool
	dest   func(id string) domain.Destination
}

var titleStrategies = []titleStrategy{
	{
		kind:   domain.KindList,
		accept: func(o domain.Object) bool { return domain.IsWritableList(o.ID) },
		dest:   domain.ListDestination,
	},
	{kind: domain.KindProject, dest: domain.ProjectDestination},
	{kind: domain.KindArea, dest: domain.AreaDestination},
}

func (st titleStrategy) search(ctx context.Context, store domain.ObjectStore, title string) (domain.Destination, bool, error) {
	objs, err := store.Enumerate(ctx, st.kind)
	if err != nil {
		return domain.Default, false, err
	}
	for _, o := range objs {
		if o.Name != title {
			continue
		}
		if st.accept != nil && !st.accept(o) {
			continue
		}
		return st.dest(o.ID), true, nil
	}
	return domain.Default, false, nil
}

func (s *Service) resolveTitle(ctx context.Context, log *slog.Logger, title string) (domain.Destination, outcome) {
	for _, st := range titleStrategies {
		dest, found, err := st.search(ctx, s.store, title)
		if err != nil {
			log.Debug("title search failed", "kind", st.kind, "title", title, "err", err)
			continue
		}
		if found {
			return dest, done()
		}
	}
	return domain.Default, skipped("nothing titled %q", title)
}

type attachMode int

const (
	attachAppend attachMode = iota
	attachMove
)

// place applies dest to the item. The chosen facet is set and the other
// two are cleared in the same write
func (s *Service) place(ctx context.Context, itemID string, dest domain.Destination, mode attachMode) outcome {
	if dest.IsDefault() {
		return done()
	}
	if dest.Kind == domain.DestList {
		var err error
		if mode == attachMove {
			err = s.store.Move(ctx, itemID, domain.MoveTarget{ListID: dest.ID})
		} else {
			err = s.store.AppendToList(ctx, dest.ID, itemID)
		}
		if err != nil {
			return skipped("attach to %s: %v", dest, err)
		}
	}
	if err := s.store.Update(ctx, itemID, dest.Patch()); err != nil {
		return skipped("set %s: %v", dest, err)
	}
	return done()
}
