package service

import (
	"context"
	"encoding/json"

	"loan-assistant-be/internal/dto"
	"loan-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the stage-transition topic into the audit log.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	auditLogger logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, auditLogger logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		auditLogger: auditLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event dto.StageTransitionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.auditLogger.Error("StageAudit", "Failed to unmarshal transition event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // ack invalid messages to prevent infinite retry
		return
	}

	cs.auditLogger.Info("StageAudit", "Stage transition", map[string]interface{}{
		"session_id": event.SessionId,
		"from":       event.From,
		"to":         event.To,
		"at":         event.At,
	})
	msg.Ack()
}
