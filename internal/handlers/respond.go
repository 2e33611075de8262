package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/valyala/fasthttp"

	"minibank/internal/services"
	"minibank/internal/utils"
)

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(payload)
}

// writeError сопоставляет доменные ошибки HTTP-статусам:
// отсутствующие сущности - 404, ошибки валидации - 400.
// Всё остальное - непредвиденные сбои, наружу уходит общий текст.
func writeError(ctx *fasthttp.RequestCtx, component string, err error, fallback string) {
	switch {
	case services.IsNotFound(err):
		writeJSON(ctx, fasthttp.StatusNotFound, map[string]string{"error": err.Error()})
	case services.IsValidation(err):
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		utils.LogError(component, "Внутренняя ошибка", err)
		writeJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{"error": fallback})
	}
}

func pathID(ctx *fasthttp.RequestCtx, name string) (int64, bool) {
	raw, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректный идентификатор в пути запроса"})
		return 0, false
	}
	return id, true
}
