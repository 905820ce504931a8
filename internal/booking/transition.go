package booking

import (
	"errors"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

// Ошибки проверки перехода статуса.
var (
	ErrTerminalStatus    = errors.New("booking status is terminal")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrActorNotAllowed   = errors.New("actor is not allowed to perform this transition")
)

// Actor — контекст участника, запрашивающего переход.
// IsCustomer/IsProvider означают владение ссылкой именно этого бронирования,
// а не роль аккаунта вообще.
type Actor struct {
	Role       model.Role
	IsCustomer bool
	IsProvider bool
}

// ValidateTransition проверяет переход from → to по таблице переходов:
//
//	pending     → confirmed    (провайдер)
//	pending     → cancelled    (провайдер или клиент)
//	confirmed   → in_progress  (провайдер)
//	in_progress → completed    (провайдер)
//
// completed и cancelled терминальны. Прямые прыжки в completed запрещены.
// Клиент может только отменить из pending; весь прямой путь ведёт провайдер.
// Машина намеренно маленькая и линейная: домен моделирует разовый физический
// выезд без перебронирования.
func ValidateTransition(from, to model.BookingStatus, actor Actor) error {
	if IsTerminal(from) {
		return ErrTerminalStatus
	}

	switch from {
	case model.BookingStatusPending:
		switch to {
		case model.BookingStatusConfirmed:
			if !actor.IsProvider {
				return ErrActorNotAllowed
			}
			return nil
		case model.BookingStatusCancelled:
			if !actor.IsProvider && !actor.IsCustomer {
				return ErrActorNotAllowed
			}
			return nil
		}
		return ErrInvalidTransition

	case model.BookingStatusConfirmed:
		if to == model.BookingStatusInProgress {
			if !actor.IsProvider {
				return ErrActorNotAllowed
			}
			return nil
		}
		return ErrInvalidTransition

	case model.BookingStatusInProgress:
		if to == model.BookingStatusCompleted {
			if !actor.IsProvider {
				return ErrActorNotAllowed
			}
			return nil
		}
		return ErrInvalidTransition
	}

	return ErrInvalidTransition
}

// IsTerminal сообщает, что из статуса нет исходящих переходов.
func IsTerminal(s model.BookingStatus) bool {
	return s == model.BookingStatusCompleted || s == model.BookingStatusCancelled
}
