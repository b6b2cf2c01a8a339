// internal/workers/matching/record-outcome/handler.go
package recordoutcome

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/common/metrics"
	"govmatch-workers/internal/matching"
	"govmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "record-outcome"
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
		h.failJob(client, job, "RECORD_OUTCOME_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.MatchScoreID == "" {
		return nil, fmt.Errorf("matchScoreId is required")
	}
	if !matching.ValidOutcome(input.Outcome) {
		return nil, fmt.Errorf("invalid outcome %q", input.Outcome)
	}

	score, err := h.getMatchScore(ctx, input.MatchScoreID)
	if err != nil {
		return nil, fmt.Errorf("match score %s: %w", input.MatchScoreID, err)
	}

	impact, err := h.config.Policy.Evaluate(score, input.Outcome, time.Now())
	if err != nil {
		return nil, err
	}

	// The stored overall score is never touched here; only the outcome tag
	// and the calibration counters move.
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE match_scores SET actual_outcome = $1, updated_at = NOW()
		WHERE id = $2`, input.Outcome, input.MatchScoreID); err != nil {
		return nil, fmt.Errorf("tag outcome: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO match_outcomes
			(id, match_score_id, outcome, actual_value, competitor_count,
			 predicted_win, prediction_correct, accuracy_delta, confidence_delta, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.NewString(), input.MatchScoreID, input.Outcome, input.ActualValue, input.CompetitorCount,
		impact.PredictedWin, impact.PredictionCorrect, impact.AccuracyDelta, impact.ConfidenceDelta,
		impact.RecordedAt); err != nil {
		return nil, fmt.Errorf("insert outcome: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE model_calibration SET
			accuracy_counter = accuracy_counter + $1,
			confidence_counter = confidence_counter + $2,
			outcomes_recorded = outcomes_recorded + 1,
			updated_at = NOW()
		WHERE algorithm_version = $3`,
		impact.AccuracyDelta, impact.ConfidenceDelta, score.AlgorithmVersion); err != nil {
		return nil, fmt.Errorf("update calibration counters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	result := "incorrect"
	if impact.PredictionCorrect {
		result = "correct"
	}
	metrics.OutcomesRecorded.WithLabelValues(result).Inc()

	h.logger.Info("outcome recorded", map[string]interface{}{
		"matchScoreId":      input.MatchScoreID,
		"outcome":           input.Outcome,
		"predictionCorrect": impact.PredictionCorrect,
	})

	return &Output{Impact: impact, Recorded: true}, nil
}

func (h *Handler) getMatchScore(ctx context.Context, id string) (*models.MatchScore, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT id, overall_score, confidence, algorithm_version
		FROM match_scores WHERE id = $1`, id)

	var score models.MatchScore
	if err := row.Scan(&score.ID, &score.OverallScore, &score.Confidence, &score.AlgorithmVersion); err != nil {
		return nil, err
	}
	return &score, nil
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
