package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Capacity math constants
const (
	// SubSlotMinutes фиксированная гранулярность проверки зоны ACTIVE.
	// Должна нацело делить длительность игры для всех поддерживаемых
	// конфигураций (30/60/90/120 минут).
	SubSlotMinutes = 15

	EventMinParticipants    = 15  // минимальный размер группы для EVENT
	EventDurationMinutes    = 120 // окно отдельной комнаты праздника
	EventSetupBufferMinutes = 15  // пауза между началом праздника и первой игрой

	MinNumberOfGames = 1
	MaxNumberOfGames = 6
)

// Alternative slot search constants
const (
	MaxAlternatives           = 7  // включая финальный custom-вариант
	AlternativeStepMinutes    = 15 // шаг поиска в пределах дня
	AlternativeMaxOffsetHours = 4  // глубина поиска назад/вперед в пределах дня
)

// AlternativeDayOffsets смещения по дням для поиска альтернатив на соседних датах
var AlternativeDayOffsets = []int{-2, -1, 1, 2}

// Default branch capacity values
const (
	DefaultGameDurationMinutes        = 30
	DefaultMaxConcurrentActivePlayers = 84
	DefaultLaserExclusiveThreshold    = 10
)

// Business validation constants
const (
	MinGameDurationMinutes      = 30
	MaxGameDurationMinutes      = 120
	MinActivePlayersCeiling     = 1
	MaxActivePlayersCeiling     = 500
	MinExclusiveThreshold       = 2
	MaxExclusiveThreshold       = 100
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// SupportedGameDurations допустимые значения длительности игры.
// Все кратны SubSlotMinutes, чтобы суб-слоты не резали границы игр.
var SupportedGameDurations = []int{30, 60, 90, 120}

// InactiveStatuses список статусов, не участвующих в расчетах емкости
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
