package events

import "context"

// NopPublisher заглушка издателя для конфигураций с выключенными событиями
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (NopPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	return nil
}

func (NopPublisher) PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
