// Package main is the entry point for the KL listings Lambda function.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/Ronantfs/KL-listings-server/internal/config"
	"github.com/Ronantfs/KL-listings-server/internal/handler"
	"github.com/Ronantfs/KL-listings-server/internal/storage"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg.LogLevel)

	store, err := storage.NewS3Store(context.Background(), cfg.AWSRegion)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build S3 store")
	}

	h := handler.New(store, cfg, log)

	lambda.Start(func(ctx context.Context, event json.RawMessage) (interface{}, error) {
		// Warmup detection (MUST be first - before any other processing)
		if warmup, ok := IsWarmupEvent(event); ok {
			return HandleWarmup(ctx, log, warmup)
		}

		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(event, &req); err != nil {
			return nil, err
		}

		return h.Handle(ctx, req)
	})
}

func newLogger(levelName string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
