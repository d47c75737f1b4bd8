package uploadsvc

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/yourname/upload_lite/internal/models"
)

type (
	// PartSource отдаёт части multipart-тела в порядке поступления. *multipart.Reader подходит.
	PartSource interface {
		NextPart() (*multipart.Part, error)
	}

	// Service объединяет операции над каталогом загрузок.
	Service interface {
		SaveAll(ctx context.Context, parts PartSource) (models.UploadResult, error)
		FileSystem() http.FileSystem
		Usage() (models.Usage, error)
		SweepPartials(ttl time.Duration) (int, error)
	}
)

type Deps struct {
	Fs                afero.Fs
	Dir               string
	MaxFileSize       int64
	AllowedExtensions []string
	UniqueKeys        bool
	Now               func() time.Time
	Logger            *log.Logger
}

type Files struct {
	Deps
	allowed map[string]struct{}
}

// New конструирует сервис загрузки. Пустые зависимости заменяются значениями по умолчанию.
func New(deps Deps) *Files {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	allowed := make(map[string]struct{}, len(deps.AllowedExtensions))
	for _, ext := range deps.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}

	return &Files{Deps: deps, allowed: allowed}
}

var _ Service = (*Files)(nil)
