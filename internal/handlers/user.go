package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"

	"minibank/internal/models"
	"minibank/internal/services"
	"minibank/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser обрабатывает POST /users
func (h *UserHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	var req models.CreateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректное тело запроса"})
		return
	}

	user := &models.User{Login: req.Login, Email: req.Email}
	if err := h.userService.CreateUser(ctx, user); err != nil {
		writeError(ctx, "UserHandler", err, "Ошибка создания пользователя")
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, user)
	utils.LogSuccess("UserHandler", "%s", fmt.Sprintf("Пользователь %d создан", user.ID))
}

// GetUser обрабатывает GET /users/{id}
func (h *UserHandler) GetUser(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(ctx, id)
	if err != nil {
		writeError(ctx, "UserHandler", err, "Ошибка получения пользователя")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, user)
}

// GetAllUsers обрабатывает GET /users
func (h *UserHandler) GetAllUsers(ctx *fasthttp.RequestCtx) {
	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		writeError(ctx, "UserHandler", err, "Ошибка получения пользователей")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, users)
}

// UpdateUser обрабатывает PUT /users/{id}
func (h *UserHandler) UpdateUser(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректное тело запроса"})
		return
	}

	user := &models.User{ID: id, Login: req.Login, Email: req.Email}
	if err := h.userService.UpdateUser(ctx, user); err != nil {
		writeError(ctx, "UserHandler", err, "Ошибка обновления пользователя")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, user)
}

// DeleteUser обрабатывает DELETE /users/{id}
func (h *UserHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(ctx, id); err != nil {
		writeError(ctx, "UserHandler", err, "Ошибка удаления пользователя")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Пользователь удалён",
		"user_id": id,
	})
}
