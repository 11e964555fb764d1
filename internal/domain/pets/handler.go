package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"petdb/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const basePath = "/api/v1/pets"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route(basePath, func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		// Cantidad de especies distintas (antes de /{petID} para no chocar)
		pr.Get("/species", countSpeciesHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type petRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Age       *int   `json:"age"` // null => 0
	OwnerName string `json:"owner_name"`
}

type petResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	Age       int    `json:"age"`
	OwnerName string `json:"owner_name"`
}

type errorResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// createPetHandler crea una mascota.
//
//	@Summary	Create a new pet
//	@Tags		pets
//	@Accept		json
//	@Produce	json
//	@Param		pet	body		petRequest	true	"pet"
//	@Success	201	{object}	petResponse
//	@Failure	400	{object}	errorResponse
//	@Router		/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodePetRequest(w, r)
		if !ok {
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("%s/%d", basePath, p.ID))
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler lista todas las mascotas ordenadas por id.
//
//	@Summary	Get all pets
//	@Tags		pets
//	@Produce	json
//	@Success	200	{array}	petResponse
//	@Router		/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler
//
//	@Summary	Get pet by ID
//	@Tags		pets
//	@Produce	json
//	@Param		id	path		int	true	"pet id"
//	@Success	200	{object}	petResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/pets/{id} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler
//
//	@Summary	Update a pet
//	@Tags		pets
//	@Accept		json
//	@Produce	json
//	@Param		id	path		int			true	"pet id"
//	@Param		pet	body		petRequest	true	"pet"
//	@Success	200	{object}	petResponse
//	@Failure	400	{object}	errorResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/pets/{id} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		in, ok := decodePetRequest(w, r)
		if !ok {
			return
		}

		p, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler
//
//	@Summary	Delete a pet
//	@Tags		pets
//	@Param		id	path	int	true	"pet id"
//	@Success	204
//	@Failure	404	{object}	errorResponse
//	@Router		/pets/{id} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// countSpeciesHandler
//
//	@Summary	Get number of different species
//	@Tags		pets
//	@Produce	json
//	@Success	200	{integer}	int
//	@Router		/pets/species [get]
func countSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.CountDistinctSpecies(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

func decodePetRequest(w http.ResponseWriter, r *http.Request) (Input, bool) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req petRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", nil)
		return Input{}, false
	}

	in := Input{
		Name:      req.Name,
		Species:   req.Species,
		OwnerName: req.OwnerName,
	}
	if req.Age != nil {
		in.Age = *req.Age
	}
	return in, true
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "petID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid pet id: %q", raw), nil)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "validation failed", ve.Fields)
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error(), nil)
	default:
		// No exponemos errores de storage al cliente.
		middleware.LoggerFrom(r.Context()).Error("pets handler failed", map[string]any{
			"err":    err.Error(),
			"method": r.Method,
			"path":   r.URL.Path,
		})
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	writeJSON(w, status, errorResponse{
		Timestamp:   time.Now().UTC(),
		Status:      status,
		Error:       http.StatusText(status),
		Message:     msg,
		FieldErrors: fields,
	})
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Age:       p.Age,
		OwnerName: p.OwnerName,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
