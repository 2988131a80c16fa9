package domain

import "github.com/google/uuid"

// LaserRoom физическая лазертаг-комната филиала.
// Емкость выражается в количестве жилетов.
type LaserRoom struct {
	ID        uuid.UUID
	BranchID  uuid.UUID
	Name      string
	Capacity  int
	SortOrder int
	IsActive  bool
}

// EventRoom отдельная комната для праздников.
// Никогда не делится между бронированиями: первое подходящее окно побеждает.
type EventRoom struct {
	ID        uuid.UUID
	BranchID  uuid.UUID
	Name      string
	Capacity  int
	SortOrder int
	IsActive  bool
}
