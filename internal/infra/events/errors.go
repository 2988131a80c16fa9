package events

import "errors"

var (
	// ErrNotConnected соединение с брокером не установлено
	ErrNotConnected = errors.New("events: broker connection is not established")
	// ErrPublish ошибка публикации сообщения
	ErrPublish = errors.New("events: failed to publish message")
)
