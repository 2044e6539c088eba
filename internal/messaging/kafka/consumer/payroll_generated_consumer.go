package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kingxjullien14/nkp-ems/internal/events"
	"github.com/kingxjullien14/nkp-ems/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumePayrollGenerated(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_generated")
	log.Info("payroll generated consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll generated consumer stopped")
				return
			}
			log.Error("fetch payroll generated message failed", zap.Error(err))
			continue
		}

		var event events.PayrollGeneratedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_generated event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		periods := strings.Join(event.Periods, ", ")
		title := "Salary generated"
		body := fmt.Sprintf("Your salary for %s has been generated.", periods)

		failed := false
		for _, empCode := range event.EmpCodes {
			if err := notificationService.Notify(ctx, empCode, title, body, event.EventType); err != nil {
				log.Error("store payroll notification failed",
					zap.String("emp_code", empCode),
					zap.Error(err),
				)
				failed = true
			}
		}
		if failed {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll generated message failed", zap.Error(err))
			continue
		}

		log.Info("payroll notifications stored",
			zap.Int("recipients", len(event.EmpCodes)),
			zap.Strings("periods", event.Periods),
		)
	}
}
