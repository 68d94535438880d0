package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrRecordNotFound    = errors.New("employee record not found")
	ErrDocumentNotFound  = errors.New("staged document not found")
	ErrValidationFailed  = errors.New("form validation failed")
	ErrPersistFailed     = errors.New("failed to persist employee records")
	ErrKeyNotFound       = errors.New("storage key not found")
	ErrStalePhotoRead    = errors.New("photo read superseded by a newer selection")
	ErrPhotoTooLarge     = errors.New("photo exceeds the size limit")
	ErrNotAnImage        = errors.New("file is not an image")
	ErrEmptyPhoto        = errors.New("photo file is empty")
	ErrInvalidDataURL    = errors.New("malformed base64 data url")
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)
