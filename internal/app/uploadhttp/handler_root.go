package uploadhttp

import (
	"net/http"

	"github.com/yourname/upload_lite/pkg/uploadproto"
)

func (a *Server) root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(uploadproto.RootBanner))
}
