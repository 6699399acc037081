// Package checkout реализует оркестратор оформления заказа:
// конечный автомат Idle -> Confirming -> Submitting -> {Committed | Failed}
// и двухшаговую запись в бекенд (покупка, затем отчёт).
//
// Записи не атомарны, отката и повторов нет: если покупка записана,
// а отчёт — нет, остаётся задокументированное окно несогласованности.
// Такая попытка завершается как Failed, покупка логируется для ручной
// сверки, корзина остаётся нетронутой и пользователь может повторить.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/velmurzaev/storefront-console/internal/backend"
	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/lib/rabbitmq"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/metrics"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Ошибки оркестратора, разрешаемые локально без обращения к бекенду.
var (
	// ErrCartEmpty — оформление пустой корзины; сетевые вызовы не выполняются.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrNotAuthenticated — на момент подтверждения нет действующего пользователя.
	ErrNotAuthenticated = errors.New("must be logged in")
	// ErrSubmitting — попытка уже отправляется; повторный вызов игнорируется.
	ErrSubmitting = errors.New("checkout already submitting")
	// ErrOutOfSequence — подтверждение без начатой попытки либо после
	// терминального состояния.
	ErrOutOfSequence = errors.New("checkout out of sequence")
	// ErrCommitFailed — одна из двух записей не удалась; для пользователя
	// оба случая означают одно: заказ не подтверждён.
	ErrCommitFailed = errors.New("order was not confirmed")
)

// Backend описывает две записи двухшагового оформления.
type Backend interface {
	CreatePurchase(ctx context.Context, token string, order models.Order) (*backend.PurchaseAck, error)
	CreateReport(ctx context.Context, token string, order models.Order) (*backend.ReportResponse, error)
}

// Identity описывает чтение закешированной идентичности сессии.
// Principal перечитывается в момент подтверждения, а не запоминается
// со времени входа.
type Identity interface {
	Principal(ctx context.Context, sessionID string) *models.Principal
	Token(ctx context.Context, sessionID string) string
}

// Carts выдаёт корзину сессии.
type Carts interface {
	Get(sessionID string) *cart.Cart
}

// Events публикует событие о подтверждённом заказе. Публикация
// best-effort: её ошибка не меняет исход оформления.
type Events interface {
	PublishOrderCommitted(event rabbitmq.OrderCommittedEvent) error
}

// Service — оркестратор оформления заказа. Держит по одной активной
// попытке на сессию.
type Service struct {
	backend  Backend
	identity Identity
	carts    Carts
	events   Events // может быть nil, если публикация событий не настроена
	log      *slog.Logger

	mu       sync.Mutex
	attempts map[string]*models.CheckoutAttempt
}

// NewService создает новый экземпляр Service.
func NewService(b Backend, identity Identity, carts Carts, events Events, log *slog.Logger) *Service {
	return &Service{
		backend:  b,
		identity: identity,
		carts:    carts,
		events:   events,
		log:      log,
		attempts: make(map[string]*models.CheckoutAttempt),
	}
}

// State возвращает состояние активной попытки сессии; Idle, если попытки нет.
func (s *Service) State(sessionID string) models.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[sessionID]
	if !ok {
		return models.CheckoutIdle
	}
	return a.State
}

// Checkout начинает попытку оформления: при непустой корзине переводит
// сессию в Confirming и ждёт подтверждения. Сетевых вызовов нет.
// Пустая корзина отклоняется сразу, состояние остаётся Idle.
func (s *Service) Checkout(sessionID string) error {
	const op = "checkout.Checkout"
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.attempts[sessionID]; ok && a.State == models.CheckoutSubmitting {
		return fmt.Errorf("%s: %w", op, ErrSubmitting)
	}
	if s.carts.Get(sessionID).Len() == 0 {
		delete(s.attempts, sessionID)
		return fmt.Errorf("%s: %w", op, ErrCartEmpty)
	}

	s.attempts[sessionID] = &models.CheckoutAttempt{
		AttemptID: uuid.NewString(),
		StartedAt: time.Now(),
		State:     models.CheckoutConfirming,
	}
	return nil
}

// Cancel закрывает окно подтверждения и возвращает сессию в Idle.
// Отправляющуюся попытку отменить нельзя.
func (s *Service) Cancel(sessionID string) error {
	const op = "checkout.Cancel"
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.attempts[sessionID]; ok && a.State == models.CheckoutSubmitting {
		return fmt.Errorf("%s: %w", op, ErrSubmitting)
	}
	delete(s.attempts, sessionID)
	return nil
}

// Confirm подтверждает попытку и выполняет двухшаговую запись.
//
// Принципал перечитывается из кеша идентичности именно сейчас; без него
// попытка прерывается в Idle без сетевых вызовов. Дальше снимается
// снимок корзины и суммы, и строго последовательно выполняются запись
// покупки и запись отчёта — вторая не начинается, пока не завершена
// первая. Повторный Confirm во время отправки — no-op (ErrSubmitting);
// Confirm без начатой попытки — ErrOutOfSequence.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*models.CheckoutAttempt, error) {
	const op = "checkout.Confirm"

	s.mu.Lock()
	a, ok := s.attempts[sessionID]
	switch {
	case !ok:
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrOutOfSequence)
	case a.State == models.CheckoutSubmitting:
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrSubmitting)
	case a.State != models.CheckoutConfirming:
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrOutOfSequence)
	}

	p := s.identity.Principal(ctx, sessionID)
	if p == nil {
		delete(s.attempts, sessionID)
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrNotAuthenticated)
	}
	token := s.identity.Token(ctx, sessionID)

	crt := s.carts.Get(sessionID)
	if crt.Len() == 0 {
		delete(s.attempts, sessionID)
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrCartEmpty)
	}

	a.Principal = *p
	a.Items = crt.Snapshot()
	a.Total = crt.Total()
	a.State = models.CheckoutSubmitting
	s.mu.Unlock()

	log := s.log.With(slog.String("op", op), slog.String("attempt_id", a.AttemptID))

	order := models.Order{
		UserID:   p.ID,
		Username: p.Username,
		Items:    a.Items,
		Total:    a.Total,
	}

	ack, err := s.backend.CreatePurchase(ctx, token, order)
	if err != nil {
		s.fail(a)
		log.Error("purchase write failed, cart left intact", sl.Err(err))
		return a, fmt.Errorf("%s: %w", op, ErrCommitFailed)
	}

	if _, err := s.backend.CreateReport(ctx, token, order); err != nil {
		s.fail(a)
		metrics.CheckoutOrphanedPurchase.Inc()
		// Покупка записана, отчёта нет: фиксируем данные для ручной сверки.
		log.Error("report write failed after committed purchase",
			slog.Int("purchase_id", ack.PurchaseID), sl.Err(err))
		return a, fmt.Errorf("%s: %w", op, ErrCommitFailed)
	}

	s.mu.Lock()
	a.State = models.CheckoutCommitted
	s.mu.Unlock()
	crt.Clear()
	metrics.CheckoutCommitted.Inc()
	log.Info("checkout committed", slog.Int("purchase_id", ack.PurchaseID),
		slog.Float64("total", a.Total))

	if s.events != nil {
		event := rabbitmq.OrderCommittedEvent{
			AttemptID: a.AttemptID,
			UserID:    p.ID,
			Username:  p.Username,
			Total:     a.Total,
			Committed: time.Now().UTC(),
		}
		if err := s.events.PublishOrderCommitted(event); err != nil {
			log.Warn("failed to publish order committed event", sl.Err(err))
		}
	}
	return a, nil
}

func (s *Service) fail(a *models.CheckoutAttempt) {
	s.mu.Lock()
	a.State = models.CheckoutFailed
	s.mu.Unlock()
	metrics.CheckoutFailed.Inc()
}
