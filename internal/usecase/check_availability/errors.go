package check_availability

import "errors"

var (
	// ErrBranchNotFound возвращается, когда конфигурация филиала не найдена
	ErrBranchNotFound = errors.New("branch not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase.
	// Инфраструктурный сбой никогда не маскируется под "нет мест".
	ErrInternal = errors.New("usecase: internal error")
)
