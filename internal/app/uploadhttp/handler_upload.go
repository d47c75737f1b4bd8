package uploadhttp

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/yourname/upload_lite/internal/models"
	"github.com/yourname/upload_lite/pkg/httperrors"
	"github.com/yourname/upload_lite/pkg/uploadproto"
)

// upload принимает multipart-тело и целиком делегирует сохранение сервису загрузки.
func (a *Server) upload(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		a.fail(w, r, fmt.Errorf("%w: %v", models.ErrMalformedPart, err))
		return
	}

	res, err := a.files.SaveAll(r.Context(), mr)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	var total int64
	files := make([]uploadproto.File, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, uploadproto.File{
			Key:         f.Key,
			URL:         uploadproto.StaticURL(f.Key),
			Size:        f.Size,
			ContentType: f.ContentType,
		})
		total += f.Size
		a.log.Info("stored file", "key", f.Key, "size", humanize.Bytes(uint64(f.Size)), "content_type", f.ContentType)
	}
	a.log.Debug("upload complete", "files", len(files), "total", humanize.Bytes(uint64(total)))

	httperrors.JSON(w, http.StatusOK, uploadproto.Response{
		Status:  uploadproto.StatusSuccess,
		Message: uploadproto.MessageUploaded,
		Files:   files,
	})
}

func (a *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := httperrors.Classify(err)
	if status >= http.StatusInternalServerError {
		a.log.Error("upload failed", "path", r.URL.Path, "err", err)
	} else {
		a.log.Warn("upload rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	httperrors.Write(w, err)
}
