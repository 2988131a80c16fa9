package crmservice

// Customer карточка клиента из CRM
type Customer struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	VisitsCount int     `json:"visits_count"`
	IsBlocked   bool    `json:"is_blocked"`
}

// ErrorResponse модель ошибки от CRM
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
