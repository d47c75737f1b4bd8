package models

import "errors"

var (
	ErrMissingFieldName    = errors.New("part is missing a field name")
	ErrMissingFileName     = errors.New("part is missing a file name")
	ErrInvalidName         = errors.New("part name must not contain path separators")
	ErrMalformedPart       = errors.New("malformed multipart body")
	ErrTooLarge            = errors.New("file exceeds the size limit")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
	ErrCreateFile          = errors.New("error creating file")
)
