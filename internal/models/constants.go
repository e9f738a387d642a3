package models

const (
	// StatusPending is the only status the booking flow ever writes. The
	// owner confirms appointments out of band.
	StatusPending = "pending"
)

const (
	// DefaultSessionTTL время жизни корзины в Redis, в секундах
	DefaultSessionTTL = 24 * 60 * 60

	// DefaultMaxAdvanceDays как далеко вперед можно бронировать
	DefaultMaxAdvanceDays = 365

	// RateLimitRequests количество запросов в окне на одну сессию
	RateLimitRequests = 30

	// RateLimitWindow окно ограничения частоты, в секундах
	RateLimitWindow = 60

	// WorkerQueueSize размер очереди воркера синхронизации
	WorkerQueueSize = 128
)
