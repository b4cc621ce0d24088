package usecase_test

import (
	"testing"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/usecase"
)

func TestExtractTracking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		order  *domain.OrderCandidate
		want   string
		wantOK bool
	}{
		{"nil_order", nil, "", false},
		{"no_fulfillments", &domain.OrderCandidate{}, "", false},
		{
			name: "list_wins_over_everything",
			order: &domain.OrderCandidate{Fulfillments: []domain.FulfillmentRecord{{
				TrackingNumbers:   []string{"LIST-1", "LIST-2"},
				TrackingNumber:    "SINGLE",
				TrackingNumberAlt: "ALT",
				LineItems:         []domain.LineItem{{TrackingNumber: "ITEM"}},
			}}},
			want: "LIST-1", wantOK: true,
		},
		{
			name: "single_field",
			order: &domain.OrderCandidate{Fulfillments: []domain.FulfillmentRecord{{
				TrackingNumber:    "SINGLE",
				TrackingNumberAlt: "ALT",
				LineItems:         []domain.LineItem{{TrackingNumber: "ITEM"}},
			}}},
			want: "SINGLE", wantOK: true,
		},
		{
			name: "alt_cased_field",
			order: &domain.OrderCandidate{Fulfillments: []domain.FulfillmentRecord{{
				TrackingNumbers:   []string{},
				TrackingNumberAlt: "ALT",
				LineItems:         []domain.LineItem{{TrackingNumber: "ITEM"}},
			}}},
			want: "ALT", wantOK: true,
		},
		{
			name: "first_line_item_with_tracking",
			order: &domain.OrderCandidate{Fulfillments: []domain.FulfillmentRecord{{
				LineItems: []domain.LineItem{{}, {TrackingNumber: "ITEM-2"}, {TrackingNumber: "ITEM-3"}},
			}}},
			want: "ITEM-2", wantOK: true,
		},
		{
			name: "empty_list_head_falls_through",
			order: &domain.OrderCandidate{Fulfillments: []domain.FulfillmentRecord{{
				TrackingNumbers: []string{""},
				TrackingNumber:  "SINGLE",
			}}},
			want: "SINGLE", wantOK: true,
		},
		{
			name: "only_first_fulfillment_counts",
			order: &domain.OrderCandidate{Fulfillments: []domain.FulfillmentRecord{
				{},
				{TrackingNumber: "SECOND"},
			}},
			want: "", wantOK: false,
		},
		{
			name:  "nothing_populated",
			order: &domain.OrderCandidate{Fulfillments: []domain.FulfillmentRecord{{LineItems: []domain.LineItem{{}}}}},
			want:  "", wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := usecase.ExtractTracking(tt.order)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("ExtractTracking = (%q,%v), want (%q,%v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
