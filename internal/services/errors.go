package services

import "errors"

var (
	// ErrNotFound запись по коду отсутствует в хранилище.
	ErrNotFound = errors.New("[service]: record not found")
	// ErrExpired запись существует, но срок жизни истек. Отдельная от
	// ErrNotFound ошибка: вызывающему коду важно отличать "никогда не было"
	// от "было, но протухло".
	ErrExpired = errors.New("[service]: record expired")
	// ErrInvalidAlias пользовательский алиас не прошел проверку формата.
	ErrInvalidAlias = errors.New("[service]: invalid alias format")
	// ErrAliasTaken пользовательский алиас уже занят.
	ErrAliasTaken = errors.New("[service]: alias already in use")
	// ErrCodeConflict нарушение уникальности кода при вставке. В отличие от
	// ErrAliasTaken это не ошибка валидации, а проигранная гонка между
	// проверкой алиаса и вставкой (либо маловероятная коллизия генератора).
	ErrCodeConflict = errors.New("[service]: short code conflict")
	// ErrNotAuthorized запись принадлежит другому владельцу.
	ErrNotAuthorized = errors.New("[service]: not authorized")
	// ErrStoreRead ошибка чтения из хранилища.
	ErrStoreRead = errors.New("[service]: store read error")
	// ErrStoreWrite ошибка записи в хранилище.
	ErrStoreWrite = errors.New("[service]: store write error")
	// ErrUnknown прочие ошибки.
	ErrUnknown = errors.New("[service]: unknown error")
)
