package validate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

var (
	// ErrInvalidOrderNumber — базовая ошибка формата номера заказа.
	ErrInvalidOrderNumber = errors.New("invalid order number")
	// ErrInvalidEmail — базовая ошибка формата email.
	ErrInvalidEmail = errors.New("invalid email")
)

const maxOrderNumberLen = 50

var (
	orderNumberRe = regexp.MustCompile(`^[A-Za-z0-9_#-]+$`)
	// Намеренно простая проверка: локальная часть, '@', домен с точкой.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// OrderNumber — 1..50 символов из [A-Za-z0-9_#-].
func OrderNumber(s string) error {
	if len(s) == 0 || len(s) > maxOrderNumberLen {
		return fmt.Errorf("%w: length must be 1..%d", ErrInvalidOrderNumber, maxOrderNumberLen)
	}
	if !orderNumberRe.MatchString(s) {
		return fmt.Errorf("%w: unexpected characters", ErrInvalidOrderNumber)
	}
	return nil
}

// Email — минимальная структурная проверка адреса (не RFC 5322).
func Email(s string) error {
	if !emailRe.MatchString(s) {
		return ErrInvalidEmail
	}
	return nil
}

// Query — проверяет заданные критерии поиска; отсутствующие пропускает.
// Ошибки возвращаются как *domain.Error с соответствующим кодом.
func Query(q domain.OrderQuery) error {
	if q.HasOrderNumber() {
		if err := OrderNumber(q.OrderNumber); err != nil {
			return domain.NewError(domain.KindInvalidOrderNumber, err)
		}
	}
	if q.HasEmail() {
		if err := Email(q.Email); err != nil {
			return domain.NewError(domain.KindInvalidEmail, err)
		}
	}
	return nil
}
