// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// User is a messenger account that talked to the bot, keyed by
// (external_id, provider).
type User struct {
	ID           int64          `db:"id" json:"id"`
	ExternalID   string         `db:"external_id" json:"external_id"`
	Provider     string         `db:"provider" json:"provider"`
	Username     sql.NullString `db:"username" json:"username,omitempty"`
	FirstName    sql.NullString `db:"first_name" json:"first_name,omitempty"`
	LastName     sql.NullString `db:"last_name" json:"last_name,omitempty"`
	LanguageCode string         `db:"language_code" json:"language_code"`
	IsBot        bool           `db:"is_bot" json:"is_bot"`
	Extra        JSONMap        `db:"extra" json:"extra,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Group is a non-private chat the bot participates in, keyed by
// (external_id, provider).
type Group struct {
	ID         int64     `db:"id" json:"id"`
	ExternalID string    `db:"external_id" json:"external_id"`
	Provider   string    `db:"provider" json:"provider"`
	Title      string    `db:"title" json:"title"`
	Type       string    `db:"type" json:"type"`
	Extra      JSONMap   `db:"extra" json:"extra,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// AiService is a configured completion backend (openrouter, openai, ...).
type AiService struct {
	ID           int64          `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	DisplayName  string         `db:"display_name" json:"display_name"`
	APIURL       string         `db:"api_url" json:"api_url"`
	DefaultModel sql.NullString `db:"default_model" json:"default_model,omitempty"`
	Config       JSONMap        `db:"config" json:"config,omitempty"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	IsAvailable  bool           `db:"is_available" json:"is_available"`
	Priority     int            `db:"priority" json:"priority"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// AiModel is one model offered by an AiService.
type AiModel struct {
	ID          int64         `db:"id" json:"id"`
	AiServiceID int64         `db:"ai_service_id" json:"ai_service_id"`
	Name        string        `db:"name" json:"name"`
	DisplayName string        `db:"display_name" json:"display_name"`
	Provider    string        `db:"provider" json:"provider"`
	PricingType string        `db:"pricing_type" json:"pricing_type"`
	MaxTokens   sql.NullInt64 `db:"max_tokens" json:"max_tokens,omitempty"`
	IsActive    bool          `db:"is_active" json:"is_active"`
	IsDefault   bool          `db:"is_default" json:"is_default"`
	Priority    int           `db:"priority" json:"priority"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// Credential is one API key of an AiService with its usage accounting.
// Counters are mutated only through the usage ledger.
type Credential struct {
	ID                int64          `db:"id" json:"id"`
	AiServiceID       int64          `db:"ai_service_id" json:"ai_service_id"`
	Name              string         `db:"name" json:"name"`
	APIKey            string         `db:"api_key" json:"-"`
	UsageCount        int            `db:"usage_count" json:"usage_count"`
	MaxUsagePerDay    sql.NullInt64  `db:"max_usage_per_day" json:"max_usage_per_day,omitempty"`
	CurrentDailyUsage int            `db:"current_daily_usage" json:"current_daily_usage"`
	LastUsageDate     sql.NullTime   `db:"last_usage_date" json:"last_usage_date,omitempty"`
	LastUsedAt        sql.NullTime   `db:"last_used_at" json:"last_used_at,omitempty"`
	UsageStats        JSONMap        `db:"usage_stats" json:"usage_stats,omitempty"`
	IsActive          bool           `db:"is_active" json:"is_active"`
	IsAvailable       bool           `db:"is_available" json:"is_available"`
	Priority          int            `db:"priority" json:"priority"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// Exchange is one persisted inbound message with its AI reply or failure.
// processed_at is set exactly when either ai_response or processing_error is.
type Exchange struct {
	ID                int64           `db:"id" json:"id"`
	UserID            int64           `db:"user_id" json:"user_id"`
	GroupID           sql.NullInt64   `db:"group_id" json:"group_id,omitempty"`
	Provider          string          `db:"provider" json:"provider"`
	ExternalMessageID sql.NullString  `db:"external_message_id" json:"external_message_id,omitempty"`
	MessageType       string          `db:"message_type" json:"message_type"`
	Content           sql.NullString  `db:"content" json:"content,omitempty"`
	AiService         string          `db:"ai_service" json:"ai_service"`
	AiModel           sql.NullString  `db:"ai_model" json:"ai_model,omitempty"`
	AiResponse        sql.NullString  `db:"ai_response" json:"ai_response,omitempty"`
	AiUsage           JSONMap         `db:"ai_usage" json:"ai_usage,omitempty"`
	ProcessingError   sql.NullString  `db:"processing_error" json:"processing_error,omitempty"`
	ProcessedAt       sql.NullTime    `db:"processed_at" json:"processed_at,omitempty"`
	RawPayload        json.RawMessage `db:"raw_payload" json:"raw_payload"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}
