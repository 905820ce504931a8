package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

// Размер буфера сессии. Медленная или отвалившаяся сессия теряет
// переполнившие буфер сообщения и восстанавливает их из истории,
// повторной доставки при переподключении нет.
const sessionBuffer = 16

// Hub — реестр подписок на каналы бронирований. Каждое бронирование
// образует неявный канал; один участник может держать сколько угодно
// параллельных сессий (устройств) на одном канале.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]map[*Session]struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[uuid.UUID]map[*Session]struct{}),
	}
}

// Session — одна подписка конкретного устройства на канал бронирования.
type Session struct {
	bookingID uuid.UUID
	ch        chan model.Message
	hub       *Hub
	once      sync.Once
}

// Messages — канал входящих сообщений; закрывается при Close.
func (s *Session) Messages() <-chan model.Message {
	return s.ch
}

// Close снимает подписку и закрывает канал. Повторные вызовы безопасны.
func (s *Session) Close() {
	s.once.Do(func() {
		if s.hub != nil {
			s.hub.remove(s)
		}
		close(s.ch)
	})
}

// Subscribe регистрирует новую сессию на канале бронирования.
func (h *Hub) Subscribe(bookingID uuid.UUID) *Session {
	s := &Session{
		bookingID: bookingID,
		ch:        make(chan model.Message, sessionBuffer),
		hub:       h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.sessions[bookingID]
	if !ok {
		set = make(map[*Session]struct{})
		h.sessions[bookingID] = set
	}
	set[s] = struct{}{}

	return s
}

// NewDetachedSession возвращает сессию, не привязанную ни к одному каналу:
// она никогда ничего не получит. Используется для неавторизованных подписок,
// чтобы не раскрывать сам факт существования бронирования.
func NewDetachedSession(bookingID uuid.UUID) *Session {
	return &Session{
		bookingID: bookingID,
		ch:        make(chan model.Message, 1),
	}
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.sessions[s.bookingID]
	if !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(h.sessions, s.bookingID)
	}
}

// Broadcast раздаёт сообщение всем сессиям канала, включая другие сессии
// отправителя. Отправка неблокирующая: сессия с полным буфером сообщение
// пропускает.
func (h *Hub) Broadcast(bookingID uuid.UUID, msg model.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.sessions[bookingID] {
		select {
		case s.ch <- msg:
		default:
		}
	}
}

// Subscribers возвращает количество активных сессий канала.
func (h *Hub) Subscribers(bookingID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[bookingID])
}
