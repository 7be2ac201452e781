// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package subscriber consumes recipe transfer messages from a Pub/Sub pull
// subscription.
package subscriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"github.com/cenkalti/backoff/v5"

	"github.com/curioswitch/cookbook/transfer/server/internal/handler/recipetransfer"
)

// New returns a Subscriber feeding messages from the named subscription into
// handler.
func New(client *pubsub.Client, subscription string, handler *recipetransfer.Handler) *Subscriber {
	return &Subscriber{
		sub:     client.Subscription(subscription),
		handler: handler,
	}
}

// Subscriber receives transfer messages and acks them according to the
// pipeline outcome. Failed messages are nacked so the subscription's
// redelivery policy retries them.
type Subscriber struct {
	sub     *pubsub.Subscription
	handler *recipetransfer.Handler
}

// Run receives messages until ctx is done. Receive terminations other than
// context cancellation are retried with exponential backoff.
func (s *Subscriber) Run(ctx context.Context) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if err := s.sub.Receive(ctx, s.handleMessage); err != nil {
			slog.ErrorContext(ctx, "subscriber: receive terminated, retrying", "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()))
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("subscriber: receiving messages: %w", err)
	}
	return nil
}

func (s *Subscriber) handleMessage(ctx context.Context, msg *pubsub.Message) {
	res, err := s.handler.ProcessMessage(ctx, msg.ID, msg.Data)
	if err != nil {
		slog.ErrorContext(ctx, "subscriber: recipe transfer failed", "messageId", msg.ID, "error", err)
		msg.Nack()
		return
	}
	slog.InfoContext(ctx, "subscriber: recipe transfer completed",
		"messageId", msg.ID, "recipeId", res.RecipeID, "recipeName", res.RecipeName)
	msg.Ack()
}
