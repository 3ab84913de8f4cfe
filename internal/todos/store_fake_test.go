package todos

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pbaille/things/internal/domain"
)

var errBoom = errors.New("boom")

// fakeStore is an in-memory object graph with failure injection
type fakeStore struct {
	objs    map[string]*domain.Object
	nextID  int
	nextPos int64

	createErr     error
	moveErr       error
	updateErr     error
	getErr        map[domain.Kind]error
	enumerateErr  map[domain.Kind]error
	scheduleErrs  []error
	scheduleCalls []*time.Time
}

func newFakeStore() *fakeStore {
	f := &fakeStore{
		objs:         map[string]*domain.Object{},
		getErr:       map[domain.Kind]error{},
		enumerateErr: map[domain.Kind]error{},
	}
	for _, l := range domain.BuiltinLists {
		f.objs[l.ID] = &domain.Object{ID: l.ID, Kind: domain.KindList, Name: l.Name}
	}
	return f
}

func (f *fakeStore) add(kind domain.Kind, name string) *domain.Object {
	f.nextID++
	f.nextPos++
	o := &domain.Object{
		ID:        fmt.Sprintf("%s-%d", kind, f.nextID),
		Kind:      kind,
		Name:      name,
		Position:  f.nextPos,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if kind == domain.KindToDo || kind == domain.KindProject {
		o.Status = domain.StatusOpen
	}
	f.objs[o.ID] = o
	return o
}

func (f *fakeStore) addProject(name string) string { return f.add(domain.KindProject, name).ID }
func (f *fakeStore) addArea(name string) string    { return f.add(domain.KindArea, name).ID }

func (f *fakeStore) addProjectToDo(projectID, name string) string {
	o := f.add(domain.KindToDo, name)
	o.ProjectID = projectID
	return o.ID
}

func (f *fakeStore) projectNames(projectID string) []string {
	items, _ := f.ProjectToDos(context.Background(), projectID)
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

func (f *fakeStore) CreateToDo(_ context.Context, name, notes string) (*domain.Object, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	o := f.add(domain.KindToDo, name)
	o.Notes = notes
	o.ListID = domain.InboxListID
	cp := *o
	return &cp, nil
}

func (f *fakeStore) Get(_ context.Context, kind domain.Kind, id string) (*domain.Object, error) {
	if err := f.getErr[kind]; err != nil {
		return nil, err
	}
	o, found := f.objs[id]
	if !found || o.Kind != kind {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) Enumerate(_ context.Context, kind domain.Kind) ([]domain.Object, error) {
	if err := f.enumerateErr[kind]; err != nil {
		return nil, err
	}
	var out []domain.Object
	for _, o := range f.objs {
		if o.Kind == kind {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) ProjectToDos(ctx context.Context, projectID string) ([]domain.Object, error) {
	all, err := f.Enumerate(ctx, domain.KindToDo)
	if err != nil {
		return nil, err
	}
	var out []domain.Object
	for _, o := range all {
		if o.ProjectID == projectID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) AppendToList(_ context.Context, listID, itemID string) error {
	o, found := f.objs[itemID]
	if !found {
		return domain.ErrNotFound
	}
	o.ListID = listID
	return nil
}

func (f *fakeStore) Move(ctx context.Context, itemID string, to domain.MoveTarget) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	o, found := f.objs[itemID]
	if !found {
		return domain.ErrNotFound
	}
	if to.ListID != "" {
		o.ListID = to.ListID
		return nil
	}
	anchor, found := f.objs[to.AfterID]
	if !found {
		return domain.ErrNotFound
	}
	o.ProjectID, o.ListID, o.AreaID = anchor.ProjectID, "", ""
	items, _ := f.ProjectToDos(ctx, anchor.ProjectID)
	var pos int64
	for _, it := range items {
		if it.ID == itemID {
			continue
		}
		pos++
		f.objs[it.ID].Position = pos
		if it.ID == anchor.ID {
			pos++
			o.Position = pos
		}
	}
	return nil
}

func (f *fakeStore) Schedule(_ context.Context, itemID string, when *time.Time) error {
	f.scheduleCalls = append(f.scheduleCalls, when)
	if len(f.scheduleErrs) > 0 {
		err := f.scheduleErrs[0]
		f.scheduleErrs = f.scheduleErrs[1:]
		if err != nil {
			return err
		}
	}
	o, found := f.objs[itemID]
	if !found {
		return domain.ErrNotFound
	}
	o.ActivationDate = when
	return nil
}

func (f *fakeStore) Update(_ context.Context, itemID string, p domain.Patch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	o, found := f.objs[itemID]
	if !found {
		return domain.ErrNotFound
	}
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
	if p.TagNames != nil {
		o.TagNames = *p.TagNames
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.DueDate != nil {
		o.DueDate = p.DueDate
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
	return nil
}
