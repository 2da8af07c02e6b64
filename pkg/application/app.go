// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"fmt"

	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/events"
	"github.com/luxfi/tokengate/pkg/metrics"
	"github.com/luxfi/tokengate/pkg/registry"
	"github.com/luxfi/tokengate/pkg/token"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Gate carries the process-wide dependencies handed to every command.
type Gate struct {
	Log     *zap.Logger
	Conf    *viper.Viper
	Metrics *metrics.Collector
	Events  *events.Recorder
}

func New() *Gate {
	return &Gate{}
}

func (app *Gate) Setup(log *zap.Logger, conf *viper.Viper) {
	app.Log = log
	app.Conf = conf
	app.Metrics = metrics.New()
	app.Events = &events.Recorder{}
}

// LoadConfig decodes the current configuration.
func (app *Gate) LoadConfig() (*config.Config, error) {
	return config.Load(app.Conf)
}

// NewToken builds a token from the current configuration, wired to the
// app's logger, event recorder and metrics.
func (app *Gate) NewToken(pools registry.PoolRegistry) (*token.Token, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	params, err := cfg.TokenParams()
	if err != nil {
		return nil, fmt.Errorf("invalid token configuration: %w", err)
	}
	return token.New(params,
		token.WithLogger(app.Log),
		token.WithEvents(events.Multi(app.Events, events.LogSink{Log: app.Log})),
		token.WithMetrics(app.Metrics),
		token.WithRegistry(pools),
	)
}
