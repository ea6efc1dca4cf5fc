package service

import (
	"context"
	"encoding/json"

	"loan-assistant-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService emits stage-transition events on the in-process bus.
// Publishing is fire-and-forget from the orchestrator's point of view: a
// bus failure must never fail the turn.
type IPublisherService interface {
	PublishTransition(ctx context.Context, event dto.StageTransitionEvent) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *publisherService) PublishTransition(ctx context.Context, event dto.StageTransitionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}
