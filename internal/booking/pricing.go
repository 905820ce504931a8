package booking

import "errors"

// EmergencyMultiplier — фиксированная наценка за срочный вызов.
const EmergencyMultiplier = 1.5

// Ошибки расчёта стоимости.
var (
	ErrInvalidHours = errors.New("estimated hours must be greater than zero")
	ErrInvalidRate  = errors.New("hourly rate must not be negative")
)

// Quote считает полную стоимость бронирования по текущей ставке провайдера.
// Стоимость фиксируется один раз при создании; последующая смена ставки
// провайдера на уже созданные бронирования не влияет.
func Quote(hourlyRate, estimatedHours float64, emergency bool) (float64, error) {
	if estimatedHours <= 0 {
		return 0, ErrInvalidHours
	}
	if hourlyRate < 0 {
		return 0, ErrInvalidRate
	}

	total := hourlyRate * estimatedHours
	if emergency {
		total *= EmergencyMultiplier
	}
	return total, nil
}
