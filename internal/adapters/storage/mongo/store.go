package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"petdb/internal/domain/pets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName es la colección de mascotas dentro de la base.
const CollectionName = "pets"

// reintentos de Create cuando otro writer tomó el mismo max+1
const createAttempts = 3

type petDocument struct {
	ID        int64  `bson:"_id"`
	Name      string `bson:"name"`
	Species   string `bson:"species"`
	Age       int    `bson:"age"`
	OwnerName string `bson:"owner_name"`
}

func toDocument(p pets.Pet) petDocument {
	return petDocument{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Age:       p.Age,
		OwnerName: p.OwnerName,
	}
}

func (d petDocument) toPet() pets.Pet {
	return pets.Pet{
		ID:        d.ID,
		Name:      d.Name,
		Species:   d.Species,
		Age:       d.Age,
		OwnerName: d.OwnerName,
	}
}

// Store usa la colección pets de la base dada. La base se crea sola con
// el primer insert.
type Store struct {
	coll *mongo.Collection

	// serializa la asignación de ids dentro del proceso
	createMu sync.Mutex
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(CollectionName)}
}

// -------------------------
// seed target
// -------------------------

func (s *Store) InsertMany(ctx context.Context, records []pets.Pet) error {
	docs := make([]any, 0, len(records))
	for _, p := range records {
		docs = append(docs, toDocument(p))
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return mapDuplicate(err)
	}
	return nil
}

// CreateIndex crea {field: 1}. Mongo lo nombra <field>_1.
func (s *Store) CreateIndex(ctx context.Context, field string) error {
	if _, ok := (pets.Pet{}).FieldValue(field); !ok {
		return fmt.Errorf("mongo: cannot index unknown field %q", field)
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: 1}},
	})
	return err
}

func (s *Store) FindBy(ctx context.Context, field, value string) ([]pets.Pet, error) {
	if _, ok := (pets.Pet{}).FieldValue(field); !ok {
		return nil, fmt.Errorf("mongo: unknown field %q", field)
	}
	return s.find(ctx, bson.D{{Key: field, Value: value}})
}

// -------------------------
// pets.Repository
// -------------------------

func (s *Store) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	if p.ID != 0 {
		if _, err := s.coll.InsertOne(ctx, toDocument(p)); err != nil {
			return pets.Pet{}, mapDuplicate(err)
		}
		return p, nil
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		max, err := s.maxID(ctx)
		if err != nil {
			return pets.Pet{}, err
		}
		p.ID = max + 1

		_, err = s.coll.InsertOne(ctx, toDocument(p))
		if err == nil {
			return p, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return pets.Pet{}, err
		}
		lastErr = err
	}
	return pets.Pet{}, mapDuplicate(lastErr)
}

func (s *Store) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var doc petDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return doc.toPet(), nil
}

func (s *Store) List(ctx context.Context) ([]pets.Pet, error) {
	return s.find(ctx, bson.D{})
}

func (s *Store) Update(ctx context.Context, p pets.Pet) error {
	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, toDocument(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) CountDistinctSpecies(ctx context.Context) (int, error) {
	values, err := s.coll.Distinct(ctx, pets.FieldSpecies, bson.D{})
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

func (s *Store) find(ctx context.Context, filter bson.D) ([]pets.Pet, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []petDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toPet())
	}
	return out, nil
}

func (s *Store) maxID(ctx context.Context) (int64, error) {
	var doc petDocument
	err := s.coll.FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.ID, nil
}

func mapDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", pets.ErrDuplicateID, err)
	}
	return err
}
