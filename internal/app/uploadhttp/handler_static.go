package uploadhttp

import "net/http"

// serveStatic отдаёт файл из каталога загрузок; 404, если ключа нет.
func (a *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	a.static.ServeHTTP(w, r)
}
