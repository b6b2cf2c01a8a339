// internal/workers/profile/update-certifications/handler.go
package updatecertifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "update-certifications"
)

var validStatuses = map[string]bool{
	models.CertStatusActive:    true,
	models.CertStatusPending:   true,
	models.CertStatusExpired:   true,
	models.CertStatusSuspended: true,
	models.CertStatusRevoked:   true,
}

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "UPDATE_CERTIFICATIONS_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ProfileID == "" {
		return nil, fmt.Errorf("profileId is required")
	}
	if len(input.Changes) == 0 {
		return nil, fmt.Errorf("no certification changes provided")
	}
	for _, change := range input.Changes {
		if change.CertificationID == "" {
			return nil, fmt.Errorf("certificationId is required for every change")
		}
		if !validStatuses[change.Status] {
			return nil, fmt.Errorf("invalid certification status %q", change.Status)
		}
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	updated := 0
	for _, change := range input.Changes {
		var expiration interface{}
		if change.ExpirationDate != nil {
			parsed, err := time.Parse("2006-01-02", *change.ExpirationDate)
			if err != nil {
				return nil, fmt.Errorf("invalid expiration date %q", *change.ExpirationDate)
			}
			expiration = parsed
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE user_certifications SET
				status = $1,
				is_activated = COALESCE($2, is_activated),
				expiration_date = COALESCE($3, expiration_date),
				updated_at = NOW()
			WHERE profile_id = $4 AND certification_id = $5`,
			change.Status, change.IsActivated, expiration,
			input.ProfileID, change.CertificationID)
		if err != nil {
			return nil, fmt.Errorf("update certification %s: %w", change.CertificationID, err)
		}
		if rows, err := res.RowsAffected(); err == nil {
			updated += int(rows)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	// Eligibility and scoring both read certification state through these
	// caches; stale entries would keep matching against revoked programs.
	invalidated := h.invalidateCaches(ctx, input.ProfileID)

	h.logger.Info("certifications updated", map[string]interface{}{
		"profileId": input.ProfileID,
		"updated":   updated,
	})

	return &Output{Updated: updated, CachesInvalidated: invalidated}, nil
}

func (h *Handler) invalidateCaches(ctx context.Context, profileID string) bool {
	keys := []string{
		"profile:certs:" + profileID,
		"company:profile:" + profileID,
	}
	if err := h.redis.Del(ctx, keys...).Err(); err != nil {
		h.logger.Warn("failed to invalidate caches", map[string]interface{}{
			"profileId": profileID,
			"error":     err,
		})
		return false
	}
	return true
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
