package entity

// SubscriberState состояние подписчика уведомлений
type SubscriberState string

const (
	StateSubscribed SubscriberState = "subscribed" // Получает уведомления
	StateMuted      SubscriberState = "muted"      // Уведомления отключены
)

// Subscriber чат Telegram, получающий события трекинга
type Subscriber struct {
	ID     int64           // Telegram User ID
	ChatID int64           // Telegram Chat ID
	State  SubscriberState // Текущее состояние подписки
}

// NewSubscriber создаёт подписчика с включёнными уведомлениями
func NewSubscriber(userID, chatID int64) *Subscriber {
	return &Subscriber{
		ID:     userID,
		ChatID: chatID,
		State:  StateSubscribed,
	}
}

// SetState обновляет состояние подписки
func (s *Subscriber) SetState(state SubscriberState) {
	s.State = state
}

// Active сообщает, что подписчику нужно отправлять уведомления
func (s *Subscriber) Active() bool {
	return s.State == StateSubscribed
}
