package pets

import "context"

type Repository interface {
	// Create asigna max(id)+1 cuando p.ID == 0.
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	CountDistinctSpecies(ctx context.Context) (int, error)
}
