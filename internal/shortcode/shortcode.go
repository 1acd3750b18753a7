package shortcode

import (
	"crypto/rand"
	"regexp"

	"github.com/pkg/errors"
)

// alphabet алфавит генерируемых кодов. 62 символа на 8 позиций дают
// ~47 бит энтропии, коллизии при ожидаемых объемах маловероятны.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// aliasRegexp допустимый формат пользовательского алиаса.
var aliasRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsValidAlias проверяет формат пользовательского алиаса.
// Уникальность здесь не проверяется, это забота вызывающего кода.
func IsValidAlias(alias string) bool {
	return aliasRegexp.MatchString(alias)
}

// Random генерирует случайный код заданной длины из криптографического
// источника. Повторная проверка уникальности не выполняется: уникальный
// индекс хранилища остается последним арбитром при вставке.
func Random(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
