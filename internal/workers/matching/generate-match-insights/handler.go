// internal/workers/matching/generate-match-insights/handler.go
package generatematchinsights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-match-insights"
)

var (
	ErrInsightsTimeout = errors.New("INSIGHTS_TIMEOUT")
	ErrInsightsFailed  = errors.New("INSIGHTS_GENERATION_FAILED")
)

type Handler struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		// No client-level timeout; the per-job context bounds the call.
		client: &http.Client{},
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

	// Insight generation is strictly best-effort: any failure degrades to
	// null insights and the job still completes. The numeric score is never
	// held hostage to the AI call.
	output, err := h.execute(ctx, &input)
	if err != nil {
		h.logger.Warn("insight generation degraded", map[string]interface{}{
			"matchScoreId": input.MatchScoreID,
			"error":        err,
		})
		output = &Output{Insights: nil, Degraded: true}
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	prompt := h.buildPrompt(input)
	requestBody := map[string]interface{}{
		"model":       h.config.Model,
		"prompt":      prompt,
		"max_tokens":  h.config.MaxTokens,
		"temperature": h.config.Temperature,
		"response_format": map[string]string{
			"type": "json_object",
		},
	}

	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrInsightsTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", h.config.GenAIBaseURL+"/v1/completions", bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInsightsFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if h.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
		}

		resp, lastErr = h.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return nil, ErrInsightsTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrInsightsTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrInsightsFailed, lastErr)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrInsightsFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Strengths     []string `json:"strengths"`
		Weaknesses    []string `json:"weaknesses"`
		Opportunities []string `json:"opportunities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrInsightsFailed, err)
	}

	if len(apiResponse.Strengths) == 0 && len(apiResponse.Weaknesses) == 0 && len(apiResponse.Opportunities) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrInsightsFailed)
	}

	h.logger.Info("match insights generated", map[string]interface{}{
		"matchScoreId":  input.MatchScoreID,
		"strengths":     len(apiResponse.Strengths),
		"weaknesses":    len(apiResponse.Weaknesses),
		"opportunities": len(apiResponse.Opportunities),
	})

	return &Output{
		Insights: &models.MatchInsights{
			Strengths:     apiResponse.Strengths,
			Weaknesses:    apiResponse.Weaknesses,
			Opportunities: apiResponse.Opportunities,
		},
	}, nil
}

func (h *Handler) buildPrompt(input *Input) string {
	factors, _ := json.MarshalIndent(input.DetailedFactors, "", "  ")
	return fmt.Sprintf(`You are a government-contracting capture advisor. Based on the match score breakdown below, produce a JSON object with three string arrays: "strengths", "weaknesses", and "opportunities". Be specific and concise.

Company: %s
Opportunity: %s
Overall Score: %d

Factor Breakdown:
%s`, input.CompanyName, input.OpportunityTitle, input.OverallScore, string(factors))
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
