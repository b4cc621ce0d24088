package ports

import "context"

// Logger — логгер слоёв сервиса. Реализация сама дописывает поля запроса
// из ctx (request_id, client_id, trace_id), поэтому в сообщения их не передают.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
