package main

import (
	"context"
	"log"
	"time"

	"markethub-messaging/config"
	"markethub-messaging/internal/analytics"
	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/domain/message"
	"markethub-messaging/internal/handler"
	"markethub-messaging/internal/redisclient"
	"markethub-messaging/internal/repository"
	"markethub-messaging/internal/server"
	"markethub-messaging/internal/services"
	"markethub-messaging/internal/storage"
	"markethub-messaging/pkg/database"
	"markethub-messaging/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&conversation.Conversation{},
		&conversation.Participant{},
		&message.Message{},
		&message.Delivery{},
		&message.Attachment{},
	); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	var recorder analytics.Recorder = analytics.NoopRecorder{}
	redisClient := redisclient.New(cfg)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		l.Warnf("redis unavailable, analytics events will be dropped: %s", err)
	} else {
		recorder = analytics.NewRedisRecorder(redisClient, cfg.AnalyticsStream)
	}
	cancel()

	var s3Client *storage.Client
	if cfg.S3Bucket != "" {
		s3Client, err = storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PresignTTL: time.Duration(cfg.S3PresignTTL) * time.Second,
		})
		if err != nil {
			log.Fatalf("Failed to initialize attachment storage: %v", err)
		}
	}

	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	fanout := services.NewDeliveryFanout(recorder, l)
	suggest := services.NewSuggestionProvider(cfg, l)
	conversationService := services.NewConversationService(db, convRepo, msgRepo, fanout, suggest, recorder, cfg, l)
	attachmentService := services.NewAttachmentService(s3Client)

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(&server.Handlers{
		Conversations: handler.NewConversationHandler(conversationService, attachmentService),
	})

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
