// Package todos resolves create/update/list requests into mutations of the
// task application's object graph
package todos

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pbaille/things/internal/domain"
	"github.com/pbaille/things/internal/observability"
)

// Service serializes every operation: the object store is driven by one
// call sequence at a time
type Service struct {
	mu    sync.Mutex
	store domain.ObjectStore
	log   *slog.Logger
}

// NewService creates a Service over store. A nil logger discards output
func NewService(store domain.ObjectStore, log *slog.Logger) *Service {
	if log == nil {
		log = observability.Discard()
	}
	return &Service{store: store, log: log}
}

// Create adds a to-do and places it. Unresolvable placement references are
// skipped; only a failure to create the to-do itself is returned
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Record, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	activation, err := parseOptionalDate(req.ActivationDate)
	if err != nil {
		return nil, err
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	var patch domain.Patch
	if len(req.Tags) > 0 {
		tags := FormatTags(req.Tags)
		patch.TagNames = &tags
	}
	patch.DueDate = due

	s.mu.Lock()
	defer s.mu.Unlock()

	log := observability.FromContext(ctx, s.log).With("op", "create")
	obj, o := s.createBase(ctx, req)
	if err := settle(log, "create", o); err != nil {
		return nil, err
	}
	log = log.With("id", obj.ID)

	refs := placementRefs{
		ListID:    req.ListID,
		ProjectID: req.ProjectID,
		AreaID:    req.AreaID,
		ListTitle: req.ListTitle,
	}
	err = s.run(log, []step{
		{"attributes", func() outcome { return s.writeAttributes(ctx, obj.ID, patch, degrade) }},
		{"schedule", func() outcome { return s.schedule(ctx, obj.ID, activation, degrade) }},
		{"placement", func() outcome {
			return s.place(ctx, obj.ID, s.resolveDestination(ctx, log, refs), attachAppend)
		}},
		{"heading", func() outcome { return s.placeUnderHeading(ctx, obj.ID, req.ProjectID, req.Heading) }},
	})
	if err != nil {
		return nil, err
	}

	return s.read(ctx, domain.KindToDo, obj.ID)
}

// Update changes an existing to-do or project. The id must match one of
// them; everything else in the request is applied only when present
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Record, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	patch := domain.Patch{Name: req.Name, Notes: req.Notes}
	if req.Tags != nil {
		tags := FormatTags(*req.Tags)
		patch.TagNames = &tags
	}
	switch {
	case req.Completed:
		st := domain.StatusCompleted
		patch.Status = &st
	case req.Canceled:
		st := domain.StatusCanceled
		patch.Status = &st
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDueDate = true
		} else {
			due, err := ParseLocalDate(*req.DueDate)
			if err != nil {
				return nil, err
			}
			patch.DueDate = &due
		}
	}
	var activation *time.Time
	if req.ActivationDate != nil && *req.ActivationDate != "" {
		t, err := ParseLocalDate(*req.ActivationDate)
		if err != nil {
			return nil, err
		}
		activation = &t
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := observability.FromContext(ctx, s.log).With("op", "update", "id", req.ID)
	obj, o := s.locate(ctx, req.ID)
	if err := settle(log, "locate", o); err != nil {
		return nil, err
	}
	log = log.With("kind", obj.Kind)

	refs := placementRefs{
		ListID:    req.ListID,
		ProjectID: req.ProjectID,
		AreaID:    req.AreaID,
	}
	err := s.run(log, []step{
		{"attributes", func() outcome { return s.writeAttributes(ctx, obj.ID, patch, failed) }},
		{"activation date", func() outcome {
			switch {
			case req.ActivationDate == nil:
				return done()
			case activation != nil:
				return s.schedule(ctx, obj.ID, activation, failed)
			default:
				return s.clearActivationDate(ctx, log, obj.ID)
			}
		}},
		{"placement", func() outcome {
			return s.place(ctx, obj.ID, s.resolveDestination(ctx, log, refs), attachMove)
		}},
	})
	if err != nil {
		return nil, err
	}

	return s.read(ctx, obj.Kind, obj.ID)
}

// ListAll returns the to-dos of one project, or all to-dos. An unknown
// project yields an empty result
func (s *Service) ListAll(ctx context.Context, f ListFilter) ([]Listed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := observability.FromContext(ctx, s.log).With("op", "list")

	var objs []domain.Object
	if f.ProjectUUID != "" {
		if _, err := s.store.Get(ctx, domain.KindProject, f.ProjectUUID); err != nil {
			log.Debug("project lookup failed", "project", f.ProjectUUID, "err", err)
			return []Listed{}, nil
		}
		items, err := s.store.ProjectToDos(ctx, f.ProjectUUID)
		if err != nil {
			log.Debug("project items failed", "project", f.ProjectUUID, "err", err)
			return []Listed{}, nil
		}
		objs = items
	} else {
		items, err := s.store.Enumerate(ctx, domain.KindToDo)
		if err != nil {
			return nil, fmt.Errorf("list to-dos: %w", err)
		}
		objs = items
	}

	out := make([]Listed, 0, len(objs))
	for _, o := range objs {
		if f.includeItems() {
			out = append(out, MapObject(o))
		} else {
			out = append(out, Summarize(o))
		}
	}
	return out, nil
}

// step is one named stage of an operation
type step struct {
	name string
	run  func() outcome
}

// run executes steps in order and stops at the first fatal outcome
func (s *Service) run(log *slog.Logger, steps []step) error {
	for _, st := range steps {
		if err := settle(log, st.name, st.run()); err != nil {
			return err
		}
	}
	return nil
}

// degrade turns a store failure into a skipped step
func degrade(err error) outcome {
	return skipped("%v", err)
}

func (s *Service) createBase(ctx context.Context, req CreateRequest) (*domain.Object, outcome) {
	obj, err := s.store.CreateToDo(ctx, req.Name, req.Notes)
	if err != nil {
		return nil, failed(fmt.Errorf("create to-do: %w", err))
	}
	return obj, done()
}

// locate finds id as a to-do, then as a project
func (s *Service) locate(ctx context.Context, id string) (*domain.Object, outcome) {
	obj, err := s.store.Get(ctx, domain.KindToDo, id)
	if err == nil {
		return obj, done()
	}
	obj, err = s.store.Get(ctx, domain.KindProject, id)
	if err == nil {
		return obj, done()
	}
	return nil, failed(fmt.Errorf("to-do or project with id %s: %w", id, domain.ErrNotFound))
}

func (s *Service) writeAttributes(ctx context.Context, id string, p domain.Patch, onErr func(error) outcome) outcome {
	if p.IsEmpty() {
		return done()
	}
	if err := s.store.Update(ctx, id, p); err != nil {
		return onErr(fmt.Errorf("update %s: %w", id, err))
	}
	return done()
}

func (s *Service) schedule(ctx context.Context, id string, when *time.Time, onErr func(error) outcome) outcome {
	if when == nil {
		return done()
	}
	if err := s.store.Schedule(ctx, id, when); err != nil {
		return onErr(fmt.Errorf("schedule %s: %w", id, err))
	}
	return done()
}

func (s *Service) read(ctx context.Context, kind domain.Kind, id string) (*Record, error) {
	obj, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("read back %s: %w", id, err)
	}
	return MapObject(*obj), nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseLocalDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
