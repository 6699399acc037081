// Package login реализует HTTP-обработчик входа пользователя.
//
// Обработчик валидирует учётные данные, делегирует вход бекенду,
// создаёт сессию консоли и сохраняет пользователя с токеном в кеш
// идентичности до отправки ответа: проверка авторизации, запущенная
// редиректом сразу после входа, обязана увидеть нового пользователя.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/velmurzaev/storefront-console/internal/backend"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/jwt"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Request — структура входных данных для входа.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает вход через бекенд.
type Service interface {
	Login(ctx context.Context, username, password string) (*backend.LoginResponse, error)
}

// Identity описывает запись идентичности новой сессии.
type Identity interface {
	SetPrincipal(ctx context.Context, sessionID string, p models.Principal, token string) error
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	identity Identity
	sessions jwt.Maker
	validate *validator.Validate
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, service Service, identity Identity, sessions jwt.Maker) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		identity: identity,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя через бекенд, создаёт сессию консоли и возвращает данные пользователя с путём перехода.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Бекенд недоступен"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	loginResp, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			log.Info("login rejected", slog.String("username", req.Username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("login is temporarily unavailable"))
		return
	}

	sessionID := uuid.NewString()
	// Идентичность сохраняется до выпуска cookie и до любого ответа,
	// чтобы следующая проверка авторизации увидела нового пользователя.
	if err := h.identity.SetPrincipal(r.Context(), sessionID, loginResp.User, loginResp.Token); err != nil {
		log.Error("failed to persist principal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create session"))
		return
	}

	sessionToken, err := h.sessions.GenerateToken(sessionID)
	if err != nil {
		log.Error("failed to issue session token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create session"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    sessionToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	location := "/store"
	if strings.EqualFold(loginResp.User.Role, models.RoleAdmin) {
		location = "/dashboard"
	}

	log.Info("login success", slog.String("username", req.Username),
		slog.String("role", loginResp.User.Role))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":     loginResp.User,
		"location": location,
	}))
}
