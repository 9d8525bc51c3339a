package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// Store implements ports.DocumentStore on top of a single Mongo collection.
// Documents keep string ids (UUIDs assigned on insert) so identifiers stay
// opaque and backend-independent.
type Store struct {
	col *mongo.Collection
}

// Opener hands out per-collection stores from one database handle.
type Opener struct {
	db *mongo.Database
}

func NewOpener(db *mongo.Database) *Opener {
	return &Opener{db: db}
}

func (o *Opener) Open(name string) ports.DocumentStore {
	return &Store{col: o.db.Collection(name)}
}

func (s *Store) Insert(ctx context.Context, doc domain.Doc) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stored := doc.Clone()
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
		stored[domain.IDField] = id
	}

	if _, err := s.col.InsertOne(ctx, toBSON(stored)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("insert: %w", domain.ErrDuplicate)
		}
		return "", fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

func (s *Store) FindOne(ctx context.Context, selector domain.Doc) (domain.Doc, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	err := s.col.FindOne(ctx, toBSON(selector)).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find one: %w", err)
	}
	return fromBSON(raw), nil
}

func (s *Store) Find(ctx context.Context, selector domain.Doc) ([]domain.Doc, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.col.Find(ctx, toBSON(selector))
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []domain.Doc
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return docs, nil
}

func (s *Store) UpdateFields(ctx context.Context, id string, fields domain.Doc) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{domain.IDField: id},
		bson.M{"$set": toBSON(fields)})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{domain.IDField: id})
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Count(ctx context.Context, selector domain.Doc) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, toBSON(selector))
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (s *Store) RemoveAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("remove all: %w", err)
	}
	return nil
}

func toBSON(d domain.Doc) bson.M {
	m := make(bson.M, len(d))
	for k, v := range d {
		m[k] = v
	}
	return m
}

func fromBSON(m bson.M) domain.Doc {
	d := make(domain.Doc, len(m))
	for k, v := range m {
		d[k] = v
	}
	return d
}
