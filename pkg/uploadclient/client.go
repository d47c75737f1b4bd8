package uploadclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/yourname/upload_lite/pkg/uploadproto"
)

// UploadFile — одна часть multipart-запроса.
type UploadFile struct {
	Category string
	FileName string
	Reader   io.Reader
	// Size используется только для прогресс-бара; 0 — размер неизвестен.
	Size int64
}

type Client interface {
	// Upload Отправить файлы одним multipart-запросом
	Upload(ctx context.Context, baseURL string, files ...UploadFile) (uploadproto.Response, error)
	// Fetch Скачать сохранённый файл по ключу
	Fetch(ctx context.Context, baseURL, key string) (io.ReadCloser, error)
}

type httpClient struct {
	c        *http.Client
	progress io.Writer
}

// New создаёт HTTP-клиент. Если progress не nil, туда рисуется ход передачи.
func New(progress io.Writer) Client {
	return &httpClient{
		c:        &http.Client{},
		progress: progress,
	}
}

// Upload стримит файлы в POST /upload, не буферизуя их целиком.
func (h *httpClient) Upload(ctx context.Context, baseURL string, files ...UploadFile) (uploadproto.Response, error) {
	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(h.writeParts(mw, files))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadproto.JoinURL(baseURL, uploadproto.PathUpload), pr)
	if err != nil {
		return uploadproto.Response{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		return uploadproto.Response{}, err
	}
	defer resp.Body.Close()

	var out uploadproto.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return uploadproto.Response{}, fmt.Errorf("upload failed: %s: decode body: %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK || out.Status != uploadproto.StatusSuccess {
		return out, fmt.Errorf("upload failed: %s: %s", resp.Status, out.Message)
	}

	return out, nil
}

func (h *httpClient) writeParts(mw *multipart.Writer, files []UploadFile) error {
	for i, f := range files {
		w, err := mw.CreateFormFile(f.Category, f.FileName)
		if err != nil {
			return err
		}

		src := f.Reader
		bar := startProgress(h.progress, fmt.Sprintf("Uploading %s (%d/%d)", f.FileName, i+1, len(files)), f.Size)
		if bar != nil {
			src = io.TeeReader(f.Reader, bar)
		}

		_, err = io.Copy(w, src)
		bar.finish(err)
		if err != nil {
			return err
		}
	}

	return mw.Close()
}

// Fetch скачивает файл и возвращает поток с телом.
func (h *httpClient) Fetch(ctx context.Context, baseURL, key string) (io.ReadCloser, error) {
	u := uploadproto.JoinURL(baseURL, uploadproto.StaticURL(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s failed: %s", key, resp.Status)
	}

	if h.progress == nil {
		return resp.Body, nil
	}

	bar := startProgress(h.progress, fmt.Sprintf("Downloading %s", key), resp.ContentLength)

	return progressBody{ReadCloser: resp.Body, bar: bar}, nil
}
