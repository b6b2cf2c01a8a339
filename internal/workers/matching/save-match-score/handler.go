// internal/workers/matching/save-match-score/handler.go
package savematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"govmatch-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "save-match-score"
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		h.failJob(client, job, "SAVE_MATCH_SCORE_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute upserts the one match-score row a profile/opportunity pair may
// have. Re-scoring after a profile or algorithm change overwrites the prior
// row, keyed on (profile_id, opportunity_id).
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ProfileID == "" || input.OpportunityID == "" {
		return nil, fmt.Errorf("profileId and opportunityId are required")
	}

	factors, err := json.Marshal(input.DetailedFactors)
	if err != nil {
		return nil, fmt.Errorf("marshal detailed factors: %w", err)
	}
	eligibility, err := json.Marshal(input.Eligibility)
	if err != nil {
		return nil, fmt.Errorf("marshal eligibility: %w", err)
	}

	id := uuid.NewString()
	row := h.db.QueryRowContext(ctx, `
		INSERT INTO match_scores
			(id, profile_id, opportunity_id, overall_score, confidence,
			 detailed_factors, eligibility, algorithm_version, scoring_method,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (profile_id, opportunity_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			confidence = EXCLUDED.confidence,
			detailed_factors = EXCLUDED.detailed_factors,
			eligibility = EXCLUDED.eligibility,
			algorithm_version = EXCLUDED.algorithm_version,
			scoring_method = EXCLUDED.scoring_method,
			updated_at = NOW()
		RETURNING id`,
		id, input.ProfileID, input.OpportunityID, input.OverallScore, input.Confidence,
		factors, eligibility, input.AlgorithmVersion, input.ScoringMethod)

	var savedID string
	if err := row.Scan(&savedID); err != nil {
		return nil, fmt.Errorf("upsert match score: %w", err)
	}

	h.writeAuditLog(ctx, savedID, input)

	h.logger.Info("match score saved", map[string]interface{}{
		"matchScoreId":  savedID,
		"profileId":     input.ProfileID,
		"opportunityId": input.OpportunityID,
		"overallScore":  input.OverallScore,
	})

	return &Output{MatchScoreID: savedID, Saved: true}, nil
}

// writeAuditLog records the save for traceability. Audit failures are logged
// and swallowed; they never fail the job.
func (h *Handler) writeAuditLog(ctx context.Context, matchScoreID string, input *Input) {
	detail, _ := json.Marshal(map[string]interface{}{
		"overallScore":     input.OverallScore,
		"confidence":       input.Confidence,
		"algorithmVersion": input.AlgorithmVersion,
	})
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, entity_type, entity_id, action, detail, created_at)
		VALUES ($1, 'match_score', $2, 'saved', $3, NOW())`,
		uuid.NewString(), matchScoreID, detail)
	if err != nil {
		h.logger.Warn("failed to write audit log entry", map[string]interface{}{
			"matchScoreId": matchScoreID,
			"error":        err,
		})
	}
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
