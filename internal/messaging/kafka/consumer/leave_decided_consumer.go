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

func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title := fmt.Sprintf("Leave request %s", event.Status)
		body := fmt.Sprintf("Your leave request %q was %s by %s.", event.Subject, event.Status, event.DecidedBy)
		if err := notificationService.Notify(ctx, event.EmpCode, title, body, event.EventType); err != nil {
			log.Error("store leave decision notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("emp_code", event.EmpCode),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision notification stored",
			zap.String("leave_id", event.LeaveID),
			zap.String("emp_code", event.EmpCode),
			zap.String("status", event.Status),
		)
	}
}
