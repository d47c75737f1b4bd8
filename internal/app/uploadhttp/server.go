package uploadhttp

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yourname/upload_lite/internal/usecase/uploadsvc"
	"github.com/yourname/upload_lite/pkg/uploadproto"
)

const manualGCTTL = 24 * time.Hour

// Server serves the upload API on top of the upload service.
type Server struct {
	files  uploadsvc.Service
	log    *log.Logger
	gcTTL  time.Duration
	static http.Handler
}

// Option настраивает Server.
type Option func(*Server)

// WithGCTTL задаёт возраст, начиная с которого POST /admin/gc удаляет недописанные файлы.
func WithGCTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.gcTTL = ttl
		}
	}
}

// New создаёт HTTP-обработчик сервиса загрузки.
func New(files uploadsvc.Service, logger *log.Logger, opts ...Option) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	srv := &Server{
		files: files,
		log:   logger,
		gcTTL: manualGCTTL,
	}
	for _, o := range opts {
		o(srv)
	}
	srv.static = http.StripPrefix(uploadproto.PathStatic, http.FileServer(files.FileSystem()))

	return srv.routes()
}

// routes регистрирует обработчики API, статики и служебных эндпоинтов.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(a.log))
	r.Use(middleware.Recoverer)

	r.Get(uploadproto.PathRoot, a.root)
	r.Post(uploadproto.PathUpload, a.upload)

	r.Get(uploadproto.PathStatic+"/*", a.serveStatic)
	r.Head(uploadproto.PathStatic+"/*", a.serveStatic)

	r.Get(uploadproto.PathHealth, a.health)
	r.Post(uploadproto.PathAdminGC, a.gcOnce)

	return r
}
