package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/ports/mocks"
	"github.com/manish-env/shopify-order-tracking/internal/usecase"
	"github.com/manish-env/shopify-order-tracking/pkg/ctxmeta"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func fixedClock() time.Time { return now }

func newService(t *testing.T) (*usecase.TrackingService, *mocks.MockOrderSource, *mocks.MockEventPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := mocks.NewMockOrderSource(ctrl)
	events := mocks.NewMockEventPublisher(ctrl)
	return usecase.NewTrackingService(source, events, noopLogger{}, fixedClock), source, events
}

func TestTrack_DeliveredWithoutTracking(t *testing.T) {
	svc, source, events := newService(t)

	closed := time.Date(2024, 1, 14, 16, 45, 0, 0, time.UTC)
	source.EXPECT().FindByName(gomock.Any(), "#1001").Return([]domain.OrderCandidate{{
		ID:          1,
		DisplayName: "#1001",
		CreatedAt:   time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		ClosedAt:    &closed,
	}}, nil)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Track(context.Background(), domain.OrderQuery{OrderNumber: "1001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusDelivered || got.TrackingNumber != nil || !got.ButtonsDisabled {
		t.Fatalf("unexpected report: %+v", got)
	}
	if got.DeliveredAt == nil || got.DeliveredAt.Format(time.RFC3339) != "2024-01-14T16:45:00Z" {
		t.Fatalf("unexpected deliveredAt: %v", got.DeliveredAt)
	}
	if got.OrderNumber != "1001" || !got.LastUpdated.Equal(now) {
		t.Fatalf("unexpected order number / lastUpdated: %+v", got)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "Order Delivered" || body["trackingNumber"] != nil || body["deliveredAt"] != "2024-01-14T16:45:00Z" || body["buttonsDisabled"] != true {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestTrack_FreshOrderProcessing(t *testing.T) {
	svc, source, events := newService(t)

	source.EXPECT().FindByEmail(gomock.Any(), "a@b.co").Return([]domain.OrderCandidate{{
		DisplayName: "#7", Email: "a@b.co", CreatedAt: now.Add(-3 * time.Hour),
	}}, nil)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Track(context.Background(), domain.OrderQuery{Email: "a@b.co"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusProcessing || got.ButtonsDisabled || got.DisabledReason != nil {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestTrack_OldOrderInTransitByAge(t *testing.T) {
	svc, source, events := newService(t)

	source.EXPECT().FindByName(gomock.Any(), "#8").Return([]domain.OrderCandidate{{
		DisplayName: "#8", CreatedAt: now.Add(-72 * time.Hour),
	}}, nil)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Track(context.Background(), domain.OrderQuery{OrderNumber: "8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusInTransit || got.DisabledReason == nil || *got.DisabledReason != "Order is in transit (48+ hours)" {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestTrack_TwoCriteriaNoEmailMatch_FirstResult(t *testing.T) {
	svc, source, events := newService(t)

	source.EXPECT().FindByName(gomock.Any(), "#9").Return([]domain.OrderCandidate{
		{DisplayName: "#9", Email: "first@example.com", CreatedAt: now.Add(-time.Hour),
			Fulfillments: []domain.FulfillmentRecord{{TrackingNumber: "FIRST"}}},
		{DisplayName: "#9", Email: "second@example.com", CreatedAt: now},
	}, nil)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Track(context.Background(), domain.OrderQuery{OrderNumber: "9", Email: "nobody@example.com"})
	if err != nil {
		t.Fatalf("want first result, got error %v", err)
	}
	if got.TrackingNumber == nil || *got.TrackingNumber != "FIRST" || got.Status != domain.StatusInTransit {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestTrack_InputErrorsSkipUpstreamAndEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query domain.OrderQuery
		want  domain.ErrorKind
	}{
		{"missing", domain.OrderQuery{}, domain.KindMissingCriteria},
		{"bad_number", domain.OrderQuery{OrderNumber: "10 01"}, domain.KindInvalidOrderNumber},
		{"bad_email", domain.OrderQuery{Email: "not-an-email"}, domain.KindInvalidEmail},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Никаких EXPECT: любой вызов магазина или публикации провалит тест.
			svc, _, _ := newService(t)

			_, err := svc.Track(context.Background(), tt.query)
			if got := domain.KindOf(err); got != tt.want {
				t.Fatalf("want %s, got %s (%v)", tt.want, got, err)
			}
		})
	}
}

func TestTrack_NotFoundPublishesEvent(t *testing.T) {
	svc, source, events := newService(t)

	source.EXPECT().FindByName(gomock.Any(), "#404").Return([]domain.OrderCandidate{}, nil)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.LookupEvent) error {
			if e.ErrorKind != domain.KindNotFound || e.Status != "" || e.RequestID != "req-1" || e.ClientID != "10.0.0.9" || e.ID == "" {
				t.Errorf("unexpected event: %+v", e)
			}
			return nil
		})

	ctx := ctxmeta.WithRequestID(context.Background(), "req-1")
	ctx = ctxmeta.WithClientID(ctx, "10.0.0.9")
	_, err := svc.Track(ctx, domain.OrderQuery{OrderNumber: "404"})
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestTrack_UpstreamAuthError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockOrderSource(ctrl)
	events := mocks.NewMockEventPublisher(ctrl)
	log := mocks.NewMockLogger(ctrl)
	svc := usecase.NewTrackingService(source, events, log, fixedClock)

	// отказ в доступе к магазину пишется на уровне Error
	log.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	source.EXPECT().FindByEmail(gomock.Any(), "a@b.co").Return(nil, statusErr(http.StatusUnauthorized))
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Track(context.Background(), domain.OrderQuery{Email: "a@b.co"})
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUpstreamAuthError {
		t.Fatalf("want UpstreamAuthError, got %v", err)
	}
	if de.Message() != "Order service authentication failed" {
		t.Fatalf("unexpected message %q", de.Message())
	}
}

func TestTrack_PublishFailureDoesNotFailLookup(t *testing.T) {
	svc, source, events := newService(t)

	source.EXPECT().FindByName(gomock.Any(), "#5").Return([]domain.OrderCandidate{{
		DisplayName: "#5", CreatedAt: now.Add(-time.Hour),
	}}, nil)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	got, err := svc.Track(context.Background(), domain.OrderQuery{OrderNumber: "5"})
	if err != nil || got == nil || got.Status != domain.StatusProcessing {
		t.Fatalf("publish failure must be warn only: report=%+v err=%v", got, err)
	}
}
