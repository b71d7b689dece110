package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/ai"
	"github.com/salamraya/iqjan-bot/internal/api"
	"github.com/salamraya/iqjan-bot/internal/config"
	"github.com/salamraya/iqjan-bot/internal/messenger"
	"github.com/salamraya/iqjan-bot/internal/metrics"
	"github.com/salamraya/iqjan-bot/internal/models"
	"github.com/salamraya/iqjan-bot/internal/repository"
)

type pipelineService struct {
	cfg            *config.Config
	repo           repository.Repository
	redisClient    *redis.Client
	msgr           messenger.Messenger
	provider       ai.Provider
	metrics        *metrics.Metrics
	logger         *zap.Logger
	circuitBreaker *CircuitBreaker
}

func NewPipelineService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	msgr messenger.Messenger,
	provider ai.Provider,
	m *metrics.Metrics,
	logger *zap.Logger,
) PipelineService {
	cb := NewCircuitBreaker(&cfg.Messenger.CircuitBreaker, logger)

	return &pipelineService{
		cfg:            cfg,
		repo:           repo,
		redisClient:    redisClient,
		msgr:           msgr,
		provider:       provider,
		metrics:        m,
		logger:         logger,
		circuitBreaker: cb,
	}
}

// Process runs one webhook delivery end to end: normalize, persist the
// exchange, send the placeholder reply, complete against the AI provider and
// edit the placeholder with the answer. Persistence steps share one
// transaction; a failure anywhere rolls the exchange back. The placeholder
// may already be on the user's screen when that happens, which is accepted:
// the user sees a reply that is never answered rather than silence.
func (s *pipelineService) Process(ctx context.Context, rawPayload []byte) (*ProcessResult, error) {
	start := time.Now()

	event := s.msgr.ParseInbound(rawPayload)
	s.metrics.WebhooksReceived.WithLabelValues(string(event.Kind)).Inc()

	if event.Kind != models.EventKindMessage {
		s.logger.Info("Skipping webhook delivery without a message",
			zap.String("provider", s.msgr.Name()))
		return &ProcessResult{
			Status:  api.WebhookResponseStatusSkipped,
			Message: "no message to process",
		}, nil
	}

	var (
		exchangeID int64
		result     *models.AiResult
	)

	err := s.repo.WithinTx(ctx, func(txRepo repository.Repository) error {
		usageSvc := NewUsageService(txRepo, s.logger)
		credentialSvc := NewCredentialService(txRepo, usageSvc, s.logger)

		user, err := txRepo.Users().Upsert(ctx, userFromEvent(event, s.msgr.Name()))
		if err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}

		var groupID sql.NullInt64
		if event.ChatKind != models.ChatKindPrivate {
			group, err := txRepo.Groups().Upsert(ctx, groupFromEvent(event, s.msgr.Name()))
			if err != nil {
				return fmt.Errorf("failed to upsert group: %w", err)
			}
			groupID = sql.NullInt64{Int64: group.ID, Valid: true}
		}

		exchange := &models.Exchange{
			UserID:      user.ID,
			GroupID:     groupID,
			Provider:    s.msgr.Name(),
			MessageType: event.MessageType,
			AiService:   s.cfg.Ai.Service,
			RawPayload:  event.RawPayload,
		}
		if event.MessageID != "" {
			exchange.ExternalMessageID = sql.NullString{String: event.MessageID, Valid: true}
		}
		if event.Text != "" {
			exchange.Content = sql.NullString{String: event.Text, Valid: true}
		}

		exchangeID, err = txRepo.Exchanges().Create(ctx, exchange)
		if err != nil {
			return fmt.Errorf("failed to create exchange: %w", err)
		}

		s.msgr.SendTyping(ctx, event.ChatID)

		placeholder, err := s.deliverPlaceholder(ctx, event)
		if err != nil {
			return err
		}

		model := s.resolveModel(ctx, txRepo)

		credential, err := credentialSvc.Select(ctx, s.cfg.Ai.Service)
		if err != nil {
			return err
		}

		aiStart := time.Now()
		result = s.provider.Complete(ctx, credential.APIKey, event.Text, model, nil)

		aiStatus := "failure"
		if result.Success {
			aiStatus = "success"
		}
		s.metrics.AiRequests.WithLabelValues(aiStatus).Inc()
		s.metrics.AiRequestDuration.WithLabelValues(aiStatus).Observe(time.Since(aiStart).Seconds())

		if result.Success {
			if err := usageSvc.IncrementUsage(ctx, credential, result.Usage); err != nil {
				return err
			}
		}

		if err := s.finalizeExchange(ctx, txRepo, exchangeID, result); err != nil {
			return err
		}

		return s.deliverAnswer(ctx, event, placeholder, result.Response)
	})

	s.metrics.PipelineDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.PipelineOutcomes.WithLabelValues("failed").Inc()
		if errors.Is(err, ErrNoCredentialAvailable) {
			s.metrics.CredentialExhaustion.Inc()
		}
		s.logger.Error("Pipeline failed",
			zap.String("chatID", event.ChatID),
			zap.String("externalMessageID", event.MessageID),
			zap.Error(err))
		return &ProcessResult{
			Status:  api.WebhookResponseStatusFailed,
			Message: err.Error(),
		}, err
	}

	s.metrics.PipelineOutcomes.WithLabelValues("processed").Inc()
	s.cacheExchangeID(event, exchangeID)

	s.logger.Info("Webhook delivery processed",
		zap.Int64("exchangeID", exchangeID),
		zap.String("externalMessageID", event.MessageID),
		zap.Bool("aiSuccess", result.Success),
		zap.String("circuitBreakerState", string(s.circuitBreaker.GetState())))

	return &ProcessResult{
		Status:     api.WebhookResponseStatusOk,
		Message:    "processed",
		ExchangeID: exchangeID,
	}, nil
}

// deliverPlaceholder sends the immediate acknowledgement reply and returns
// the platform identifiers needed to edit it later.
func (s *pipelineService) deliverPlaceholder(ctx context.Context, event *models.InboundEvent) (*messenger.SendResult, error) {
	var placeholder *messenger.SendResult

	err := s.circuitBreaker.Execute(ctx, func() error {
		var sendErr error
		placeholder, sendErr = s.msgr.SendMessage(ctx, event.ChatID, s.cfg.Messenger.PlaceholderText, event.MessageID)
		return sendErr
	})

	if err != nil {
		s.metrics.MessengerDeliveries.WithLabelValues("sendMessage", "failure").Inc()
		return nil, fmt.Errorf("failed to send placeholder: %w", err)
	}

	s.metrics.MessengerDeliveries.WithLabelValues("sendMessage", "success").Inc()
	return placeholder, nil
}

// deliverAnswer replaces the placeholder text with the final response, the
// answer on success or the apology on AI failure.
func (s *pipelineService) deliverAnswer(ctx context.Context, event *models.InboundEvent, placeholder *messenger.SendResult, text string) error {
	err := s.circuitBreaker.Execute(ctx, func() error {
		return s.msgr.EditMessage(ctx, placeholder.ChatID, placeholder.MessageID, text)
	})

	if err != nil {
		s.metrics.MessengerDeliveries.WithLabelValues("editMessage", "failure").Inc()
		return fmt.Errorf("failed to edit placeholder: %w", err)
	}

	s.metrics.MessengerDeliveries.WithLabelValues("editMessage", "success").Inc()
	return nil
}

// finalizeExchange records the terminal state of the exchange: the answer on
// success, the failure detail otherwise, never both.
func (s *pipelineService) finalizeExchange(ctx context.Context, txRepo repository.Repository, exchangeID int64, result *models.AiResult) error {
	var (
		response        *string
		processingError *string
	)
	if result.Success {
		response = &result.Response
	} else {
		processingError = &result.Error
	}

	if err := txRepo.Exchanges().Finalize(ctx, exchangeID, response, result.Usage, result.Model, processingError); err != nil {
		return fmt.Errorf("failed to finalize exchange: %w", err)
	}
	return nil
}

// resolveModel picks the model for the completion call: the catalog default
// of the configured service first, its service-level default second, the
// compiled-in default last. Catalog lookups failing is not fatal.
func (s *pipelineService) resolveModel(ctx context.Context, txRepo repository.Repository) string {
	svc, err := txRepo.Services().GetByName(ctx, s.cfg.Ai.Service)
	if err != nil {
		if !errors.Is(err, repository.ErrAiServiceNotFound) {
			s.logger.Warn("Failed to look up AI service, using configured model",
				zap.String("service", s.cfg.Ai.Service),
				zap.Error(err))
		}
		return s.cfg.Ai.DefaultModel
	}

	model, err := txRepo.Services().DefaultModel(ctx, svc.ID)
	if err != nil {
		s.logger.Warn("Failed to look up default model, using configured model",
			zap.String("service", s.cfg.Ai.Service),
			zap.Error(err))
		return s.cfg.Ai.DefaultModel
	}
	if model != nil {
		return model.Name
	}

	if svc.DefaultModel.Valid && svc.DefaultModel.String != "" {
		return svc.DefaultModel.String
	}

	return s.cfg.Ai.DefaultModel
}

// cacheExchangeID caches the exchange id by external message id after commit.
// Best effort only.
func (s *pipelineService) cacheExchangeID(event *models.InboundEvent, exchangeID int64) {
	if event.MessageID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("exchange:%s:%s", s.msgr.Name(), event.MessageID)
	cacheValue := fmt.Sprintf("%d:%s", exchangeID, time.Now().Format(time.RFC3339))

	if err := s.redisClient.Set(ctx, cacheKey, cacheValue, 24*time.Hour).Err(); err != nil {
		s.logger.Warn("Failed to cache exchange ID in Redis",
			zap.Int64("exchangeID", exchangeID),
			zap.Error(err))
	}
}

// GetExchanges retrieves processed exchanges with pagination.
func (s *pipelineService) GetExchanges(ctx context.Context, page, limit int) (*api.ExchangeListResponse, error) {
	offset := (page - 1) * limit

	exchanges, err := s.repo.Exchanges().GetProcessed(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchanges: %w", err)
	}

	totalCount, err := s.repo.Exchanges().CountProcessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	totalPages := int(totalCount) / limit
	if int(totalCount)%limit > 0 {
		totalPages++
	}

	var exchangeResponses []api.Exchange
	for _, exch := range exchanges {
		resp := api.Exchange{
			Id:          exch.ID,
			Provider:    exch.Provider,
			MessageType: exch.MessageType,
			AiService:   exch.AiService,
		}

		if exch.Content.Valid {
			resp.Content = &exch.Content.String
		}
		if exch.AiModel.Valid {
			resp.AiModel = &exch.AiModel.String
		}
		if exch.AiResponse.Valid {
			resp.AiResponse = &exch.AiResponse.String
		}
		if exch.ProcessingError.Valid {
			resp.ProcessingError = &exch.ProcessingError.String
		}
		if exch.ProcessedAt.Valid {
			resp.ProcessedAt = &exch.ProcessedAt.Time
		}

		exchangeResponses = append(exchangeResponses, resp)
	}

	return &api.ExchangeListResponse{
		Exchanges: exchangeResponses,
		Pagination: api.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   int(totalCount),
			ItemsPerPage: limit,
		},
	}, nil
}

// SetupWebhook registers the configured public URL with the messenger.
func (s *pipelineService) SetupWebhook(ctx context.Context) error {
	if s.cfg.Messenger.WebhookURL == "" {
		return fmt.Errorf("messenger webhook_url is not configured")
	}

	if err := s.msgr.SetWebhook(ctx, s.cfg.Messenger.WebhookURL); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	s.logger.Info("Webhook registered",
		zap.String("provider", s.msgr.Name()),
		zap.String("url", s.cfg.Messenger.WebhookURL))
	return nil
}

func (s *pipelineService) GetCircuitBreakerStatus() (state api.HealthResponseCircuitBreakerState, requests uint32, failures uint32) {
	state = s.circuitBreaker.GetState()
	requests, failures = s.circuitBreaker.GetCounts()
	return
}

func userFromEvent(event *models.InboundEvent, provider string) *models.User {
	user := &models.User{
		ExternalID: event.SenderID,
		Provider:   provider,
	}
	if event.Username != "" {
		user.Username = sql.NullString{String: event.Username, Valid: true}
	}
	if event.FirstName != "" {
		user.FirstName = sql.NullString{String: event.FirstName, Valid: true}
	}
	if event.LastName != "" {
		user.LastName = sql.NullString{String: event.LastName, Valid: true}
	}
	return user
}

func groupFromEvent(event *models.InboundEvent, provider string) *models.Group {
	return &models.Group{
		ExternalID: event.ChatID,
		Provider:   provider,
		Title:      event.ChatTitle,
		Type:       event.ChatKind,
	}
}
