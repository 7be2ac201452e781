// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

// PubSub is the configuration for consuming recipe transfer messages.
type PubSub struct {
	// Subscription is the ID of the pull subscription to receive recipe
	// transfer messages from. When empty, only the push endpoint is
	// served.
	Subscription string `koanf:"subscription"`
}

type Config struct {
	// PubSub is the configuration for message consumption.
	PubSub PubSub `koanf:"pubsub"`

	config.Common
}
