package booking

import "github.com/google/uuid"

// Pair — пара участников бронирования: клиент и пользователь-владелец
// провайдера. Единственная граница авторизации и для переходов статуса,
// и для доступа к чату.
type Pair struct {
	CustomerID     uuid.UUID
	ProviderUserID uuid.UUID
}

// Contains сообщает, является ли userID участником бронирования.
func (p Pair) Contains(userID uuid.UUID) bool {
	return userID != uuid.Nil && (userID == p.CustomerID || userID == p.ProviderUserID)
}
