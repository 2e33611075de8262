// Package currency содержит справочник разрешённых валют,
// конвертер и источники курсов.
package currency

import (
	"errors"
	"strings"
)

var (
	ErrNotPermitted   = errors.New("эта валюта сейчас недоступна, разрешены: RUB USD EUR")
	ErrUnknownRate    = errors.New("курс для указанной валюты не найден")
	ErrNegativeAmount = errors.New("сумма для конвертации не может быть отрицательной")
)

// Permitted - валюты, в которых можно открывать счета и делать переводы.
var Permitted = map[string]struct{}{
	"RUB": {},
	"USD": {},
	"EUR": {},
}

// Normalize приводит код валюты к каноническому верхнему регистру.
// Возвращает ErrNotPermitted, если валюта не входит в разрешённый набор
// ("rub", "RUB" и "Rub" - один и тот же код).
func Normalize(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := Permitted[normalized]; !ok {
		return "", ErrNotPermitted
	}
	return normalized, nil
}
