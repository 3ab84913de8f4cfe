package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pbaille/things/internal/domain"
)

// RedisStore keeps the object graph in Redis: one JSON value per object
// plus one id set per kind
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a RedisStore and seeds the built-in lists
func NewRedisStore(ctx context.Context, client *redis.Client, prefix string) (*RedisStore, error) {
	s := &RedisStore{client: client, prefix: prefix, now: time.Now}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: redis: %v", domain.ErrUnavailable, err)
	}

	now := s.now()
	for i, l := range domain.BuiltinLists {
		o := domain.Object{
			ID:         l.ID,
			Kind:       domain.KindList,
			Name:       l.Name,
			Position:   int64(i),
			CreatedAt:  now,
			ModifiedAt: now,
		}
		data, err := json.Marshal(o)
		if err != nil {
			return nil, err
		}
		pipe := client.Pipeline()
		pipe.SetNX(ctx, s.objectKey(l.ID), data, 0)
		pipe.SAdd(ctx, s.kindKey(domain.KindList), l.ID)
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("seed list %s: %w", l.ID, err)
		}
	}
	return s, nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) objectKey(id string) string {
	return fmt.Sprintf("%sobject:%s", s.prefix, id)
}

func (s *RedisStore) kindKey(kind domain.Kind) string {
	return fmt.Sprintf("%sobjects:%s", s.prefix, kind)
}

func (s *RedisStore) positionKey() string {
	return s.prefix + "position"
}

func (s *RedisStore) save(ctx context.Context, pipe redis.Pipeliner, o *domain.Object) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	pipe.Set(ctx, s.objectKey(o.ID), data, 0)
	pipe.SAdd(ctx, s.kindKey(o.Kind), o.ID)
	return nil
}

func (s *RedisStore) saveOne(ctx context.Context, o *domain.Object) error {
	pipe := s.client.TxPipeline()
	if err := s.save(ctx, pipe, o); err != nil {
		return err
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) insert(ctx context.Context, o domain.Object) (*domain.Object, error) {
	pos, err := s.client.Incr(ctx, s.positionKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("next position: %w", err)
	}
	o.ID = uuid.New().String()
	o.Position = pos + int64(len(domain.BuiltinLists))
	o.CreatedAt = s.now()
	o.ModifiedAt = o.CreatedAt
	if err := s.saveOne(ctx, &o); err != nil {
		return nil, fmt.Errorf("insert %s: %w", o.Kind, err)
	}
	return &o, nil
}

// CreateToDo stores an open to-do in the inbox
func (s *RedisStore) CreateToDo(ctx context.Context, name, notes string) (*domain.Object, error) {
	return s.insert(ctx, domain.Object{
		Kind:   domain.KindToDo,
		Name:   name,
		Notes:  notes,
		Status: domain.StatusOpen,
		ListID: domain.InboxListID,
	})
}

// AddProject stores an open project, optionally inside an area
func (s *RedisStore) AddProject(ctx context.Context, name, areaID string) (*domain.Object, error) {
	if areaID != "" {
		if _, err := s.Get(ctx, domain.KindArea, areaID); err != nil {
			return nil, err
		}
	}
	return s.insert(ctx, domain.Object{
		Kind:   domain.KindProject,
		Name:   name,
		Status: domain.StatusOpen,
		AreaID: areaID,
	})
}

// AddArea stores an area
func (s *RedisStore) AddArea(ctx context.Context, name string) (*domain.Object, error) {
	return s.insert(ctx, domain.Object{Kind: domain.KindArea, Name: name})
}

func (s *RedisStore) fetch(ctx context.Context, id string) (*domain.Object, error) {
	data, err := s.client.Get(ctx, s.objectKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("object %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	var o domain.Object
	if err := json.Unmarshal([]byte(data), &o); err != nil {
		return nil, fmt.Errorf("decode object %s: %w", id, err)
	}
	return &o, nil
}

// Get returns the object of the given kind, or domain.ErrNotFound
func (s *RedisStore) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Object, error) {
	o, err := s.fetch(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		return nil, err
	}
	if o.Kind != kind {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return o, nil
}

func (s *RedisStore) load(ctx context.Context, id string) (*domain.Object, error) {
	o, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !movable(o.Kind) {
		return nil, fmt.Errorf("%s %s cannot be modified: %w", o.Kind, id, domain.ErrInvalidInput)
	}
	return o, nil
}

// Enumerate returns every object of kind in display order
func (s *RedisStore) Enumerate(ctx context.Context, kind domain.Kind) ([]domain.Object, error) {
	ids, err := s.client.SMembers(ctx, s.kindKey(kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	if len(ids) == 0 {
		return []domain.Object{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, s.objectKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	objs := make([]domain.Object, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, err
		}
		var o domain.Object
		if err := json.Unmarshal([]byte(data), &o); err != nil {
			return nil, fmt.Errorf("decode object: %w", err)
		}
		objs = append(objs, o)
	}
	sort.SliceStable(objs, func(i, j int) bool {
		if objs[i].Position != objs[j].Position {
			return objs[i].Position < objs[j].Position
		}
		return objs[i].CreatedAt.Before(objs[j].CreatedAt)
	})
	return objs, nil
}

// ProjectToDos returns the to-dos of a project in display order
func (s *RedisStore) ProjectToDos(ctx context.Context, projectID string) ([]domain.Object, error) {
	all, err := s.Enumerate(ctx, domain.KindToDo)
	if err != nil {
		return nil, err
	}
	objs := make([]domain.Object, 0)
	for _, o := range all {
		if o.ProjectID == projectID {
			objs = append(objs, o)
		}
	}
	return objs, nil
}

// AppendToList puts the item at the end of a built-in list
func (s *RedisStore) AppendToList(ctx context.Context, listID, itemID string) error {
	if _, err := s.Get(ctx, domain.KindList, listID); err != nil {
		return err
	}
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	pos, err := s.client.Incr(ctx, s.positionKey()).Result()
	if err != nil {
		return fmt.Errorf("next position: %w", err)
	}
	o.ListID = listID
	o.Position = pos + int64(len(domain.BuiltinLists))
	o.ModifiedAt = s.now()
	return s.saveOne(ctx, o)
}

// Move puts the item into a list, or right after a sibling (taking the
// sibling's project)
func (s *RedisStore) Move(ctx context.Context, itemID string, to domain.MoveTarget) error {
	if to.ListID != "" {
		if _, err := s.Get(ctx, domain.KindList, to.ListID); err != nil {
			return err
		}
		o, err := s.load(ctx, itemID)
		if err != nil {
			return err
		}
		o.ListID = to.ListID
		o.ModifiedAt = s.now()
		return s.saveOne(ctx, o)
	}

	anchor, err := s.load(ctx, to.AfterID)
	if err != nil {
		return fmt.Errorf("move anchor: %w", err)
	}
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	o.ProjectID, o.ListID, o.AreaID = anchor.ProjectID, "", ""
	o.ModifiedAt = s.now()

	siblings, err := s.ProjectToDos(ctx, anchor.ProjectID)
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.Object, len(siblings)+1)
	ids := make([]string, 0, len(siblings))
	for i := range siblings {
		byID[siblings[i].ID] = &siblings[i]
		ids = append(ids, siblings[i].ID)
	}
	byID[o.ID] = o

	// keep project positions in the range the siblings already occupy
	var base int64
	if len(siblings) > 0 {
		base = siblings[0].Position
	}
	pipe := s.client.TxPipeline()
	for i, id := range reorderAfter(ids, o.ID, anchor.ID) {
		obj := byID[id]
		obj.Position = base + int64(i)
		if err := s.save(ctx, pipe, obj); err != nil {
			return err
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	return nil
}

// Schedule sets or clears the activation date
func (s *RedisStore) Schedule(ctx context.Context, itemID string, when *time.Time) error {
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	if when != nil {
		t := *when
		o.ActivationDate = &t
	} else {
		o.ActivationDate = nil
	}
	o.ModifiedAt = s.now()
	return s.saveOne(ctx, o)
}

// Update applies attribute writes to a to-do or project
func (s *RedisStore) Update(ctx context.Context, itemID string, p domain.Patch) error {
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	applyPatch(o, p, s.now())
	if err := s.saveOne(ctx, o); err != nil {
		return fmt.Errorf("update %s: %w", itemID, err)
	}
	return nil
}
