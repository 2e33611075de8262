package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"minibank/internal/utils"
)

// WithLogging присваивает запросу идентификатор и логирует запрос/ответ.
func WithLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		startTime := time.Now()
		requestID := uuid.New().String()

		ctx.SetUserValue("request_id", requestID)
		ctx.Response.Header.Set("X-Request-Id", requestID)

		utils.LogRequest(string(ctx.Method()), string(ctx.Path()), requestID)

		next(ctx)

		utils.LogResponse(string(ctx.Path()), ctx.Response.StatusCode(), time.Since(startTime))
	}
}
