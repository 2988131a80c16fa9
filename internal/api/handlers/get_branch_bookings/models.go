package get_branch_bookings

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/service/bookings/models"
)

const dateLayout = "2006-01-02"

// parseQuery разбирает query-параметры фильтрации списка бронирований филиала.
// Даты передаются в формате YYYY-MM-DD, endDate включительно.
func parseQuery(branchID uuid.UUID, userID int64, isManager bool, query url.Values) (*models.GetBranchBookingsRequest, error) {
	req := &models.GetBranchBookingsRequest{
		UserID:    userID,
		IsManager: isManager,
		BranchID:  branchID,
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", raw, err)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", raw, err)
		}
		req.EndDate = &endDate
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if bookingType := query.Get("type"); bookingType != "" {
		req.Type = &bookingType
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
