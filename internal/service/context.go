package service

import "context"

type ctxKey string

const ctxActorKey ctxKey = "actor"

// WithActor кладёт идентификатор действующего пользователя в контекст.
// Аутентификация — забота внешнего слоя; движку нужно только имя для аудита.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ctxActorKey, actor)
}

func ActorFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxActorKey).(string)
	return v, ok
}
