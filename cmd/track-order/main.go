package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/manish-env/shopify-order-tracking/config"
	"github.com/manish-env/shopify-order-tracking/internal/app"
	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/kafka"
	"github.com/manish-env/shopify-order-tracking/pkg/logger"
)

// CLI для разового поиска статуса заказа в настроенном магазине (без ограничителя).
func main() {
	orderNumber := flag.String("order", "", "order number, with or without leading #")
	email := flag.String("email", "", "customer email")
	asJSON := flag.Bool("json", false, "print the raw JSON report")
	timeout := flag.Duration("timeout", 15*time.Second, "lookup timeout")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fatalf("config: %v", err)
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fatalf("logger: %v", err)
	}
	defer func() { _ = cleanup() }()

	service, err := app.NewTrackingService(&cfg, kafka.NoopPublisher{}, logg)
	if err != nil {
		fatalf("order store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := service.Track(ctx, domain.OrderQuery{OrderNumber: *orderNumber, Email: *email})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint(de.Kind), de.Message())
		} else {
			fmt.Fprintf(os.Stderr, "%s\n", color.RedString(err.Error()))
		}
		os.Exit(2)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}
	printReport(report)
}

func printReport(r *domain.TrackingReport) {
	label := color.New(color.Faint).SprintFunc()

	fmt.Printf("%s #%s\n", label("order   "), r.OrderNumber)
	fmt.Printf("%s %s\n", label("status  "), statusColor(r.Status).Sprint(r.Status))
	if r.TrackingNumber != nil {
		fmt.Printf("%s %s\n", label("tracking"), *r.TrackingNumber)
	}
	fmt.Printf("%s %s\n", label("ordered "), r.OrderDate.Format(time.RFC3339))
	if r.DeliveredAt != nil {
		fmt.Printf("%s %s\n", label("delivered"), r.DeliveredAt.Format(time.RFC3339))
	}
	if r.ButtonsDisabled && r.DisabledReason != nil {
		fmt.Printf("%s %s\n", label("actions "), color.YellowString("disabled: %s", *r.DisabledReason))
	}
}

func statusColor(s domain.Status) *color.Color {
	switch s {
	case domain.StatusDelivered:
		return color.New(color.FgGreen, color.Bold)
	case domain.StatusInTransit:
		return color.New(color.FgCyan, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.RedString(format, args...))
	os.Exit(1)
}
