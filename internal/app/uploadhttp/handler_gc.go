package uploadhttp

import "net/http"

// gcOnce вручную удаляет недописанные загрузки старше gcTTL.
func (a *Server) gcOnce(w http.ResponseWriter, _ *http.Request) {
	n, err := a.files.SweepPartials(a.gcTTL)
	if err != nil {
		a.log.Error("manual gc", "err", err)
	} else {
		a.log.Info("manual gc", "removed", n)
	}
	w.WriteHeader(http.StatusNoContent)
}
