package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kingxjullien14/nkp-ems/internal/events"
	"github.com/kingxjullien14/nkp-ems/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title := "Welcome aboard"
		body := fmt.Sprintf("Hi %s, your employee account %s is ready.", event.FullName, event.EmpCode)
		if err := notificationService.Notify(ctx, event.EmpCode, title, body, event.EventType); err != nil {
			log.Error("store welcome notification failed",
				zap.String("emp_code", event.EmpCode),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("welcome notification stored", zap.String("emp_code", event.EmpCode))
	}
}
