package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pbaille/things/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "things.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func names(objs []domain.Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name
	}
	return out
}

func TestStoreSeedsBuiltinLists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lists, err := s.Enumerate(ctx, domain.KindList)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if len(lists) != len(domain.BuiltinLists) {
		t.Fatalf("got %d lists, want %d", len(lists), len(domain.BuiltinLists))
	}
	if lists[0].ID != domain.InboxListID {
		t.Fatalf("first list = %s, want inbox", lists[0].ID)
	}

	// reopening must not duplicate the seed
	path := filepath.Join(t.TempDir(), "reopen.db")
	for i := 0; i < 2; i++ {
		again, err := New(path)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		lists, _ := again.Enumerate(ctx, domain.KindList)
		again.Close()
		if len(lists) != len(domain.BuiltinLists) {
			t.Fatalf("open %d: got %d lists", i, len(lists))
		}
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateToDo(ctx, "Write report", "by friday")
	if err != nil {
		t.Fatalf("CreateToDo() error = %v", err)
	}

	got, err := s.Get(ctx, domain.KindToDo, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Write report" || got.Notes != "by friday" || got.Status != domain.StatusOpen {
		t.Fatalf("unexpected object: %#v", got)
	}
	if got.ListID != domain.InboxListID {
		t.Fatalf("list = %q, want inbox", got.ListID)
	}

	if _, err := s.Get(ctx, domain.KindProject, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get(project) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, domain.KindToDo, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStoreUpdateAndSchedule(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	o, err := s.CreateToDo(ctx, "x", "")
	if err != nil {
		t.Fatalf("CreateToDo() error = %v", err)
	}

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	done := domain.StatusCompleted
	tags := "a, b"
	if err := s.Update(ctx, o.ID, domain.Patch{TagNames: &tags, DueDate: &due, Status: &done}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	when := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	if err := s.Schedule(ctx, o.ID, &when); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	got, err := s.Get(ctx, domain.KindToDo, o.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TagNames != tags || got.Status != domain.StatusCompleted || got.CompletedAt == nil {
		t.Fatalf("unexpected object: %#v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("due = %v, want %v", got.DueDate, due)
	}
	if got.ActivationDate == nil || !got.ActivationDate.Equal(when) {
		t.Fatalf("activation = %v, want %v", got.ActivationDate, when)
	}

	if err := s.Update(ctx, o.ID, domain.Patch{ClearDueDate: true}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := s.Schedule(ctx, o.ID, nil); err != nil {
		t.Fatalf("Schedule(nil) error = %v", err)
	}
	got, _ = s.Get(ctx, domain.KindToDo, o.ID)
	if got.DueDate != nil || got.ActivationDate != nil {
		t.Fatalf("dates not cleared: %#v", got)
	}
}

func TestStoreRejectsModifyingLists(t *testing.T) {
	s := newTestStore(t)
	name := "Renamed"

	err := s.Update(context.Background(), domain.TodayListID, domain.Patch{Name: &name})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStoreMoveAfterSibling(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	project, err := s.AddProject(ctx, "P", "")
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	var ids []string
	for _, name := range []string{"A", "H", "B", "new"} {
		o, err := s.CreateToDo(ctx, name, "")
		if err != nil {
			t.Fatalf("CreateToDo() error = %v", err)
		}
		pid, empty := project.ID, ""
		if err := s.Update(ctx, o.ID, domain.Patch{ProjectID: &pid, ListID: &empty}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		ids = append(ids, o.ID)
	}

	if err := s.Move(ctx, ids[3], domain.MoveTarget{AfterID: ids[1]}); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	items, err := s.ProjectToDos(ctx, project.ID)
	if err != nil {
		t.Fatalf("ProjectToDos() error = %v", err)
	}
	if got, want := names(items), []string{"A", "H", "new", "B"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	if err := s.Move(ctx, ids[3], domain.MoveTarget{AfterID: "missing"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Move(missing anchor) error = %v, want ErrNotFound", err)
	}
}

func TestStoreListPlacement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	o, err := s.CreateToDo(ctx, "x", "")
	if err != nil {
		t.Fatalf("CreateToDo() error = %v", err)
	}
	if err := s.AppendToList(ctx, domain.TodayListID, o.ID); err != nil {
		t.Fatalf("AppendToList() error = %v", err)
	}
	got, _ := s.Get(ctx, domain.KindToDo, o.ID)
	if got.ListID != domain.TodayListID {
		t.Fatalf("list = %q, want today", got.ListID)
	}

	if err := s.Move(ctx, o.ID, domain.MoveTarget{ListID: domain.InboxListID}); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	got, _ = s.Get(ctx, domain.KindToDo, o.ID)
	if got.ListID != domain.InboxListID {
		t.Fatalf("list = %q, want inbox", got.ListID)
	}

	if err := s.AppendToList(ctx, "nope", o.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("AppendToList(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestStoreAddProjectInArea(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	area, err := s.AddArea(ctx, "Work")
	if err != nil {
		t.Fatalf("AddArea() error = %v", err)
	}
	project, err := s.AddProject(ctx, "Launch", area.ID)
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	if project.AreaID != area.ID {
		t.Fatalf("area = %q, want %q", project.AreaID, area.ID)
	}
	if _, err := s.AddProject(ctx, "Orphan", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("AddProject(missing area) error = %v, want ErrNotFound", err)
	}
}

func TestReorderAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ids    []string
		item   string
		anchor string
		want   []string
	}{
		{ids: []string{"a", "h", "b", "n"}, item: "n", anchor: "h", want: []string{"a", "h", "n", "b"}},
		{ids: []string{"n", "a", "h"}, item: "n", anchor: "h", want: []string{"a", "h", "n"}},
		{ids: []string{"a", "h"}, item: "n", anchor: "a", want: []string{"a", "n", "h"}},
		{ids: []string{"a", "h"}, item: "n", anchor: "z", want: []string{"a", "h", "n"}},
	}
	for _, tt := range tests {
		if got := reorderAfter(tt.ids, tt.item, tt.anchor); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("reorderAfter(%v, %s, %s) = %v, want %v", tt.ids, tt.item, tt.anchor, got, tt.want)
		}
	}
}
