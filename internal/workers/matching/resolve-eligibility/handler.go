// internal/workers/matching/resolve-eligibility/handler.go
package resolveeligibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/matching"
	"govmatch-workers/pkg/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "resolve-eligibility"
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	db      *sql.DB
	redis   *redis.Client
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: cat,
		db:      db,
		redis:   redis,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "ELIGIBILITY_RESOLUTION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	certs := input.Certifications
	if certs == nil && input.ProfileID != "" {
		loaded, err := h.getActiveCertifications(ctx, input.ProfileID)
		if err != nil {
			h.logger.Warn("failed to load certifications, resolving with none", map[string]interface{}{
				"profileId": input.ProfileID,
				"error":     err,
			})
		}
		certs = loaded
	}

	result := matching.ResolveEligibility(h.catalog, certs, input.SetAsideCode)
	eligible := matching.EligibleSetAsides(h.catalog, certs)

	h.logger.Info("eligibility resolved", map[string]interface{}{
		"profileId": input.ProfileID,
		"setAside":  result.SetAside,
		"matchType": result.MatchType,
		"isMatch":   result.IsMatch,
	})

	return &Output{
		IsMatch:           result.IsMatch,
		MatchType:         result.MatchType,
		EligibilityScore:  result.Score,
		SetAside:          result.SetAside,
		Reason:            result.Reason,
		EligibleSetAsides: eligible,
	}, nil
}

// getActiveCertifications returns the certification IDs that currently count
// toward eligibility: active, opted in, and unexpired. Cached per profile.
func (h *Handler) getActiveCertifications(ctx context.Context, profileID string) ([]string, error) {
	cacheKey := "profile:certs:" + profileID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var certs []string
		if err := json.Unmarshal([]byte(val), &certs); err == nil {
			return certs, nil
		}
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT certification_id
		FROM user_certifications
		WHERE profile_id = $1
		  AND status = 'active'
		  AND is_activated = true
		  AND (expiration_date IS NULL OR expiration_date > NOW())`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	certs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		certs = append(certs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	data, _ := json.Marshal(certs)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return certs, nil
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
