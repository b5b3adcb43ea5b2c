package worker

import (
	"github.com/bharatmovers/booking-service/internal/service"
)

// StartMailRelay subscribes the notification service's mail hand-off to the
// event dispatcher. Delivery runs post-commit and is best-effort.
func StartMailRelay(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterMailRelay()
}
