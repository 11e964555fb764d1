package pets

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Input es el payload de create y update (PUT reemplaza todo).
type Input struct {
	Name      string
	Species   string
	Age       int
	OwnerName string
}

func (in Input) normalize() Input {
	return Input{
		Name:      strings.TrimSpace(in.Name),
		Species:   strings.TrimSpace(in.Species),
		Age:       in.Age,
		OwnerName: strings.TrimSpace(in.OwnerName),
	}
}

func (in Input) validate() error {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "pet name is required"
	}
	if in.Species == "" {
		fields["species"] = "pet species is required"
	}
	if in.Age < 0 {
		fields["age"] = "pet age must be greater than or equal to 0"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (Pet, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	return s.repo.Create(ctx, Pet{
		Name:      in.Name,
		Species:   in.Species,
		Age:       in.Age,
		OwnerName: in.OwnerName,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, notFound(id, err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// Update reemplaza todos los campos de la mascota (semántica PUT).
func (s *Service) Update(ctx context.Context, id int64, in Input) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	in = in.normalize()
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	current.Name = in.Name
	current.Species = in.Species
	current.Age = in.Age
	current.OwnerName = in.OwnerName

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, notFound(id, err)
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{ID: id}
	}
	return notFound(id, s.repo.Delete(ctx, id))
}

func (s *Service) CountDistinctSpecies(ctx context.Context) (int, error) {
	return s.repo.CountDistinctSpecies(ctx)
}

// notFound normaliza el ErrNotFound de cualquier repo a *NotFoundError.
func notFound(id int64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return err
		}
		return &NotFoundError{ID: id}
	}
	return err
}
