package router

import (
	"net/http"

	mem "petdb/internal/adapters/storage/memory"
	_ "petdb/internal/docs"
	"petdb/internal/domain/pets"
	"petdb/internal/middleware"
	"petdb/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, usa un store in-memory vacío.
	Pets pets.Repository

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	petRepo := opts.Pets
	if petRepo == nil {
		petRepo = mem.NewStore()
	}

	pets.RegisterRoutes(r, pets.NewService(petRepo))

	return r
}
