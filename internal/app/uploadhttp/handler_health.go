package uploadhttp

import (
	"net/http"

	"github.com/yourname/upload_lite/pkg/httperrors"
	"github.com/yourname/upload_lite/pkg/uploadproto"
)

// health возвращает агрегированную статистику по каталогу загрузок.
func (a *Server) health(w http.ResponseWriter, _ *http.Request) {
	usage, err := a.files.Usage()
	if err != nil {
		a.log.Error("health", "err", err)
		httperrors.Write(w, err)
		return
	}

	httperrors.JSON(w, http.StatusOK, uploadproto.Health{
		OK:         true,
		Files:      usage.Files,
		TotalBytes: usage.TotalBytes,
	})
}
