package switcher

import "sync"

// Mailbox - неограниченная FIFO-очередь намерений.
// Post никогда не блокируется и ничего не теряет: его вызывает хук клавиатуры.
type Mailbox struct {
	mu    sync.Mutex
	queue []Intent
	ready chan struct{}
}

// NewMailbox создаёт пустую очередь.
func NewMailbox() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

// Post добавляет намерение в конец очереди.
func (m *Mailbox) Post(in Intent) {
	m.mu.Lock()
	m.queue = append(m.queue, in)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Ready возвращает канал, в который приходит сигнал после Post.
func (m *Mailbox) Ready() <-chan struct{} {
	return m.ready
}

// Drain забирает все накопленные намерения в порядке поступления.
func (m *Mailbox) Drain() []Intent {
	m.mu.Lock()
	q := m.queue
	m.queue = nil
	m.mu.Unlock()
	return q
}

// Len возвращает число ожидающих намерений.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
