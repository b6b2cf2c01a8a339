// internal/workers/opportunity/enrich-award-history/handler.go
package enrichawardhistory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpclient "govmatch-workers/internal/common/http"
	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "enrich-award-history"
)

var (
	ErrAwardHistoryUnavailable = errors.New("AWARD_HISTORY_UNAVAILABLE")
)

type Handler struct {
	config *Config
	client *httpclient.Client
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: httpclient.NewClient(config.Timeout),
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
		h.failJob(client, job, "AWARD_HISTORY_UNAVAILABLE", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UEI == "" {
		return nil, fmt.Errorf("uei is required")
	}

	cacheKey := "award:history:" + input.UEI
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var output Output
		if err := json.Unmarshal([]byte(val), &output); err == nil {
			output.FromCache = true
			return &output, nil
		}
	}

	awards, err := h.fetchAwards(ctx, input.UEI)
	if err != nil {
		return nil, err
	}

	output := h.summarize(input.UEI, awards)

	data, _ := json.Marshal(output)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	h.logger.Info("award history enriched", map[string]interface{}{
		"uei":         input.UEI,
		"totalAwards": output.TotalAwards,
		"totalValue":  output.TotalValue,
	})

	return output, nil
}

func (h *Handler) fetchAwards(ctx context.Context, uei string) ([]awardRecord, error) {
	requestBody := map[string]interface{}{
		"filters": map[string]interface{}{
			"recipient_search_text": []string{uei},
			"award_type_codes":      []string{"A", "B", "C", "D"},
		},
		"fields": []string{"Award ID", "Award Amount", "Awarding Agency", "NAICS Code", "Description", "End Date"},
		"limit":  h.config.MaxAwards,
		"order":  "desc",
		"sort":   "Award Amount",
	}
	body, _ := json.Marshal(requestBody)

	req, err := http.NewRequestWithContext(ctx, "POST",
		h.config.BaseURL+"/api/v2/search/spending_by_award/", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAwardHistoryUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var parsed awardSearchResponse
	if err := h.client.DoJSON(req, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAwardHistoryUnavailable, err)
	}
	return parsed.Results, nil
}

func (h *Handler) summarize(uei string, awards []awardRecord) *Output {
	output := &Output{
		UEI:    uei,
		Awards: []models.PastContract{},
	}
	seen := map[string]bool{}
	for _, a := range awards {
		output.TotalAwards++
		output.TotalValue += a.Amount
		if a.AwardingAgency != "" && !seen[a.AwardingAgency] {
			seen[a.AwardingAgency] = true
			output.Agencies = append(output.Agencies, a.AwardingAgency)
		}

		contract := models.PastContract{
			Agency:      a.AwardingAgency,
			NAICSCode:   a.NAICSCode,
			Value:       a.Amount,
			Description: a.Description,
		}
		if a.EndDate != "" {
			if ended, err := time.Parse("2006-01-02", a.EndDate); err == nil {
				contract.EndedAt = &ended
			}
		}
		output.Awards = append(output.Awards, contract)
	}
	return output
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
