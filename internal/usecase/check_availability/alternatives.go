package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// searchAlternatives ищет до domain.MaxAlternatives вариантов взамен
// отклоненного окна. Порядок поиска: назад по 15 минут в пределах дня (до 4
// часов), затем вперед симметрично, затем то же время на соседних датах
// (-2, -1, +1, +2 дня, прошедшие даты пропускаются). Каждый кандидат заново
// проходит полную проверку доступности; последним всегда добавляется
// синтетический вариант "предложить другую дату".
//
// Поиск никогда не возвращает ошибку: кандидат, на котором проверка упала,
// просто пропускается.
func (uc *UseCase) searchAlternatives(ctx context.Context, req *Request, start, now time.Time) []domain.Slot {
	slots := make([]domain.Slot, 0, domain.MaxAlternatives)
	maxChecked := domain.MaxAlternatives - 1 // последнее место занимает custom-вариант

	step := domain.AlternativeStepMinutes
	maxSteps := domain.AlternativeMaxOffsetHours * 60 / step

	// (a) тот же день, назад по 15 минут - первый прошедший проверку вариант
	for i := 1; i <= maxSteps && len(slots) < maxChecked; i++ {
		candidate := start.Add(-time.Duration(i*step) * time.Minute)
		if !sameDay(candidate, start) {
			break
		}
		if uc.candidateAvailable(ctx, req, candidate, now) {
			slots = append(slots, makeSlot(candidate))
			break
		}
	}

	// (b) тот же день, вперед симметрично
	for i := 1; i <= maxSteps && len(slots) < maxChecked; i++ {
		candidate := start.Add(time.Duration(i*step) * time.Minute)
		if !sameDay(candidate, start) {
			break
		}
		if uc.candidateAvailable(ctx, req, candidate, now) {
			slots = append(slots, makeSlot(candidate))
			break
		}
	}

	// (c) то же время на соседних датах
	for _, offset := range domain.AlternativeDayOffsets {
		if len(slots) >= maxChecked {
			break
		}
		candidate := start.AddDate(0, 0, offset)
		if uc.candidateAvailable(ctx, req, candidate, now) {
			slots = append(slots, makeSlot(candidate))
		}
	}

	slots = append(slots, customSlot())
	return slots
}

// candidateAvailable заново проверяет конкретное время-кандидат.
// Инфраструктурный сбой на кандидате не прерывает поиск - вариант опускается.
func (uc *UseCase) candidateAvailable(ctx context.Context, req *Request, candidate, now time.Time) bool {
	if candidate.Before(now) {
		return false
	}

	verdict, err := uc.evaluate(ctx, req, candidate)
	if err != nil {
		uc.logger.Warn("CheckAvailability: alternative candidate %s skipped: %v",
			candidate.Format(domain.DateFormat+" "+domain.TimeFormat), err)
		return false
	}

	return verdict == nil
}

// makeSlot собирает альтернативный слот для конкретного времени
func makeSlot(t time.Time) domain.Slot {
	date := t.Format(domain.DateFormat)
	clock := t.Format(domain.TimeFormat)

	return domain.Slot{
		ID:    uuid.NewString(),
		Label: fmt.Sprintf("%s в %s", t.Format("02.01.2006"), clock),
		Date:  &date,
		Time:  &clock,
		Type:  domain.SlotTypeSlot,
	}
}

// customSlot синтетический вариант "предложить другую дату"
func customSlot() domain.Slot {
	return domain.Slot{
		ID:    uuid.NewString(),
		Label: "Предложить другую дату",
		Type:  domain.SlotTypeCustom,
	}
}

// sameDay проверяет, что оба момента приходятся на одну календарную дату
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
