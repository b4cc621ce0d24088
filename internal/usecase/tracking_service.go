package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/ports"
	"github.com/manish-env/shopify-order-tracking/pkg/ctxmeta"
	"github.com/manish-env/shopify-order-tracking/pkg/metrics"
	"github.com/manish-env/shopify-order-tracking/pkg/validate"
)

// Проверка, что TrackingService удовлетворяет порту верхнего уровня.
var _ ports.OrderTrackingService = (*TrackingService)(nil)

// TrackingService — прикладная логика отслеживания заказа (без знаний о транспорте).
// Валидация → поиск → трек-номер → статус. Состояния между запросами не хранит.
type TrackingService struct {
	locator *OrderLocator        // поиск и выбор заказа
	events  ports.EventPublisher // поток событий о поиске
	log     ports.Logger         // логгер
	now     func() time.Time     // часы; в тестах фиксированные
}

// NewTrackingService — DI-конструктор. now == nil → time.Now.
func NewTrackingService(
	source ports.OrderSource,
	events ports.EventPublisher,
	log ports.Logger,
	now func() time.Time,
) *TrackingService {
	if now == nil {
		now = time.Now
	}
	return &TrackingService{
		locator: NewOrderLocator(source),
		events:  events,
		log:     log,
		now:     now,
	}
}

// Track — статус заказа по номеру и/или email.
// Ошибки всегда *domain.Error; ошибки ввода возвращаются без обращения к магазину.
func (s *TrackingService) Track(ctx context.Context, query domain.OrderQuery) (*domain.TrackingReport, error) {
	if !query.HasOrderNumber() && !query.HasEmail() {
		return nil, s.fail(domain.NewError(domain.KindMissingCriteria, nil))
	}
	if err := validate.Query(query); err != nil {
		s.log.Infof(ctx, "rejected lookup input: %v", err)
		return nil, s.fail(err)
	}

	start := time.Now()
	order, err := s.locator.Locate(ctx, query)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindNotFound:
			s.log.Infof(ctx, "order not found order_number=%q by_email=%t", query.OrderNumber, query.HasEmail())
		case domain.KindUpstreamAuthError, domain.KindUpstreamAccessDenied:
			s.log.Errorf(ctx, "order store rejected credentials: %v", err)
		default:
			s.log.Warnf(ctx, "order lookup failed: %v", err)
		}
		s.publish(ctx, query.OrderNumber, err, nil)
		return nil, s.fail(err)
	}

	now := s.now()
	var tracking *string
	if tn, ok := ExtractTracking(order); ok {
		tracking = &tn
	}
	result := Classify(order, tracking, now)

	report := &domain.TrackingReport{
		OrderNumber:     order.OrderNumber(),
		Status:          result.Status,
		TrackingNumber:  result.TrackingNumber,
		OrderDate:       order.CreatedAt,
		LastUpdated:     now,
		DeliveredAt:     result.DeliveredAt,
		ButtonsDisabled: result.ButtonsDisabled,
		DisabledReason:  result.DisabledReason,
	}

	metrics.OrderLookups.WithLabelValues(string(report.Status)).Inc()
	s.log.Infof(ctx, "order resolved order=%s status=%q took=%s", report.OrderNumber, report.Status, time.Since(start))
	s.publish(ctx, report.OrderNumber, nil, report)
	return report, nil
}

// fail — учитывает ошибку в метриках и приводит её к *domain.Error.
func (s *TrackingService) fail(err error) error {
	kind := domain.KindOf(err)
	metrics.OrderLookups.WithLabelValues(string(kind)).Inc()
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.NewError(kind, err)
}

// publish — событие о завершённом поиске; сбой публикации на ответ не влияет.
func (s *TrackingService) publish(ctx context.Context, orderNumber string, lookupErr error, report *domain.TrackingReport) {
	event := &domain.LookupEvent{
		ID:          uuid.NewString(),
		OrderNumber: orderNumber,
		At:          s.now().UTC(),
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		event.RequestID = rid
	}
	if cid, ok := ctxmeta.ClientIDFromContext(ctx); ok {
		event.ClientID = cid
	}
	if report != nil {
		event.Status = report.Status
	} else {
		event.ErrorKind = domain.KindOf(lookupErr)
	}

	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warnf(ctx, "publish lookup event failed id=%s err=%v", event.ID, err)
	}
}
