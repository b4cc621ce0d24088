//go:generate mockgen -source=../order_source.go           -destination=./mock_order_source.go           -package=mocks
//go:generate mockgen -source=../throttle.go               -destination=./mock_throttle.go               -package=mocks
//go:generate mockgen -source=../event_publisher.go        -destination=./mock_event_publisher.go        -package=mocks
//go:generate mockgen -source=../logger.go                 -destination=./mock_logger.go                 -package=mocks
//go:generate mockgen -source=../order_tracking_service.go -destination=./mock_order_tracking_service.go -package=mocks

package mocks
