package network

import (
	"sync"

	"roguely-server/pkg/api"
	"roguely-server/pkg/logger"
)

// Размер личного буфера подписчика в кадрах.
const subscriberBuffer = 64

// Broadcaster занимается только рассылкой кадров подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID сессии -> Личный канал
	subscribers map[string]chan api.FrameSnapshot
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.FrameSnapshot),
	}
}

// Register создает личный канал для сессии. Старый канал той же сессии закрывается.
func (b *Broadcaster) Register(session string) chan api.FrameSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[session]; ok {
		close(old)
	}

	ch := make(chan api.FrameSnapshot, subscriberBuffer)
	b.subscribers[session] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[session]; ok {
		close(ch)
		delete(b.subscribers, session)
	}
}

// SendTo отправляет кадр одной сессии. Медленный подписчик пропускает кадр.
func (b *Broadcaster) SendTo(session string, msg api.FrameSnapshot) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[session]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		logger.Log.WithField("session", session).Debug("Subscriber channel full, frame dropped.")
		return false
	}
}

// Broadcast отправляет кадр всем. Возвращает число доставленных.
func (b *Broadcaster) Broadcast(msg api.FrameSnapshot) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}

func (b *Broadcaster) HasSubscriber(session string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[session]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
