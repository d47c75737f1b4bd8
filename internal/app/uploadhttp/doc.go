// Package uploadhttp реализует HTTP-интерфейс сервиса загрузки файлов поверх локального диска.
// Эндпоинты:
//   - GET /            — проверка, что API запущено ("File Upload API").
//   - POST /upload     — принимает multipart/form-data; имя поля части — категория, имя файла обязательно.
//   - GET /static/{key} — отдаёт сохранённый файл по ключу хранения.
//   - GET /health      — число файлов и их суммарный размер.
//   - POST /admin/gc   — ручная очистка недописанных загрузок.
package uploadhttp
