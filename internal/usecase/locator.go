package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/ports"
)

// upstreamStatus — ошибка внешнего магазина с исходным HTTP-кодом.
type upstreamStatus interface {
	HTTPStatus() int
}

// OrderLocator — поиск заказа во внешнем магазине и выбор одного кандидата.
type OrderLocator struct {
	source ports.OrderSource
}

// NewOrderLocator — DI-конструктор.
func NewOrderLocator(source ports.OrderSource) *OrderLocator {
	return &OrderLocator{source: source}
}

// Locate — находит ровно один заказ.
// Номер заказа имеет приоритет над email при построении запроса;
// email в этом случае используется только для выбора среди результатов.
func (l *OrderLocator) Locate(ctx context.Context, q domain.OrderQuery) (*domain.OrderCandidate, error) {
	if !q.HasOrderNumber() && !q.HasEmail() {
		return nil, domain.NewError(domain.KindMissingCriteria, nil)
	}

	var (
		candidates []domain.OrderCandidate
		err        error
	)
	if q.HasOrderNumber() {
		candidates, err = l.source.FindByName(ctx, NormalizeOrderNumber(q.OrderNumber))
	} else {
		candidates, err = l.source.FindByEmail(ctx, q.Email)
	}
	if err != nil {
		return nil, classifyUpstreamError(err)
	}

	selected, ok := SelectCandidate(candidates, q)
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, nil)
	}
	return selected, nil
}

// NormalizeOrderNumber — приводит номер к отображаемому виду магазина ("#1001").
func NormalizeOrderNumber(orderNumber string) string {
	if strings.HasPrefix(orderNumber, domain.OrderMarker) {
		return orderNumber
	}
	return domain.OrderMarker + orderNumber
}

// SelectCandidate — детерминированный выбор одного заказа:
//   - оба критерия: первый кандидат с совпадающим (без учёта регистра) email,
//     иначе первый результат магазина;
//   - один критерий: самый поздний по CreatedAt, при равенстве — более ранний в выдаче.
func SelectCandidate(candidates []domain.OrderCandidate, q domain.OrderQuery) (*domain.OrderCandidate, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	if q.HasOrderNumber() && q.HasEmail() {
		for i := range candidates {
			if strings.EqualFold(candidates[i].Email, q.Email) {
				return &candidates[i], true
			}
		}
		// TODO: уточнить у продукта, не должен ли несовпавший email давать NotFound.
		return &candidates[0], true
	}

	latest := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].CreatedAt.After(candidates[latest].CreatedAt) {
			latest = i
		}
	}
	return &candidates[latest], true
}

// classifyUpstreamError — код ошибки по ответу магазина; повторов не делаем.
func classifyUpstreamError(err error) error {
	var st upstreamStatus
	if errors.As(err, &st) {
		switch st.HTTPStatus() {
		case http.StatusUnauthorized:
			return domain.NewError(domain.KindUpstreamAuthError, err)
		case http.StatusForbidden:
			return domain.NewError(domain.KindUpstreamAccessDenied, err)
		}
	}
	return domain.NewError(domain.KindUpstreamUnavailable, err)
}
