// internal/workers/opportunity/sync-sam-gov/handler.go
package syncsamgov

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	commonerrors "govmatch-workers/internal/common/errors"
	httpclient "govmatch-workers/internal/common/http"
	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
)

const (
	TaskType = "sync-sam-gov"
)

var (
	ErrSamGovUnavailable = errors.New("SAM_GOV_UNAVAILABLE")
	ErrSamGovRateLimited = errors.New("SAM_GOV_RATE_LIMITED")
	ErrSamGovTimeout     = errors.New("SAM_GOV_TIMEOUT")
)

type Handler struct {
	config   *Config
	client   *httpclient.Client
	db       *sql.DB
	es       *elasticsearch.Client
	logger   logger.Logger
	errorHdl *commonerrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, es *elasticsearch.Client, log logger.Logger) *Handler {
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		client:   httpclient.NewClient(config.Timeout),
		db:       db,
		es:       es,
		logger:   taskLog,
		errorHdl: commonerrors.NewErrorHandler(taskLog),
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
		// API outages and rate limits are transient; the error handler
		// fails the job with retries left instead of throwing a BPMN error.
		h.errorHdl.HandleJobError(ctx, client, job, h.toStandardError(err))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) toStandardError(err error) *commonerrors.StandardError {
	switch {
	case errors.Is(err, ErrSamGovRateLimited):
		return commonerrors.NewSamGovRateLimitedError(err.Error())
	case errors.Is(err, ErrSamGovTimeout):
		return commonerrors.NewSamGovTimeoutError()
	default:
		return commonerrors.NewSamGovUnavailableError(err)
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.PostedFrom == "" || input.PostedTo == "" {
		return nil, fmt.Errorf("postedFrom and postedTo are required")
	}

	maxPages := input.MaxPages
	if maxPages <= 0 || maxPages > h.config.MaxPages {
		maxPages = h.config.MaxPages
	}

	output := &Output{}
	for page := 0; page < maxPages; page++ {
		batch, total, err := h.fetchPage(ctx, input, page)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		output.Pages++
		output.Fetched += len(batch)

		normalized := make([]*models.Opportunity, 0, len(batch))
		for i := range batch {
			normalized = append(normalized, h.normalize(&batch[i]))
		}

		upserted, err := h.upsertOpportunities(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("upsert page %d: %w", page, err)
		}
		output.Upserted += upserted

		indexed, err := h.bulkIndex(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("index page %d: %w", page, err)
		}
		output.Indexed += indexed

		if output.Fetched >= total {
			break
		}
	}

	h.logger.Info("sam.gov sync completed", map[string]interface{}{
		"fetched":  output.Fetched,
		"upserted": output.Upserted,
		"indexed":  output.Indexed,
		"pages":    output.Pages,
	})

	return output, nil
}

func (h *Handler) fetchPage(ctx context.Context, input *Input, page int) ([]samGovOpportunity, int, error) {
	params := url.Values{}
	params.Set("api_key", h.config.APIKey)
	params.Set("postedFrom", input.PostedFrom)
	params.Set("postedTo", input.PostedTo)
	params.Set("limit", strconv.Itoa(h.config.PageSize))
	params.Set("offset", strconv.Itoa(page*h.config.PageSize))
	if len(input.NAICSCodes) > 0 {
		params.Set("ncode", strings.Join(input.NAICSCodes, ","))
	}

	req, err := http.NewRequestWithContext(ctx, "GET",
		h.config.BaseURL+"/opportunities/v2/search?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSamGovUnavailable, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, 0, ErrSamGovTimeout
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrSamGovUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, 0, ErrSamGovRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, 0, fmt.Errorf("%w: status %d", ErrSamGovUnavailable, resp.StatusCode)
	}

	var body samGovResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("%w: decode error: %v", ErrSamGovUnavailable, err)
	}

	return body.Records, body.TotalRecords, nil
}

func (h *Handler) normalize(rec *samGovOpportunity) *models.Opportunity {
	status := "inactive"
	if strings.EqualFold(rec.Active, "yes") {
		status = "active"
	}

	opp := &models.Opportunity{
		ID:                 uuid.NewString(),
		NoticeID:           rec.NoticeID,
		Title:              rec.Title,
		Description:        rec.Description,
		Agency:             topLevelAgency(rec.Department),
		SubAgency:          rec.SubTier,
		PSCCode:            rec.ClassificationCode,
		SetAsideCode:       strings.ToUpper(strings.TrimSpace(rec.TypeOfSetAside)),
		PlaceOfPerformance: rec.PlaceOfPerformance.State.Code,
		GovernmentLevel:    "federal",
		Status:             status,
	}
	if rec.NAICSCode != "" {
		opp.NAICSCodes = []string{rec.NAICSCode}
	}
	if rec.Award.Amount != "" {
		if v, err := strconv.ParseFloat(rec.Award.Amount, 64); err == nil {
			opp.EstimatedValue = v
		}
	}
	return opp
}

// topLevelAgency extracts the department from SAM.gov's dot-separated
// parent path ("DEPT OF DEFENSE.DEPT OF THE NAVY...").
func topLevelAgency(fullPath string) string {
	if fullPath == "" {
		return ""
	}
	return strings.SplitN(fullPath, ".", 2)[0]
}

func (h *Handler) upsertOpportunities(ctx context.Context, opportunities []*models.Opportunity) (int, error) {
	count := 0
	for _, opp := range opportunities {
		if opp.NoticeID == "" {
			continue
		}
		naics, _ := json.Marshal(opp.NAICSCodes)
		_, err := h.db.ExecContext(ctx, `
			INSERT INTO opportunities
				(id, notice_id, title, description, agency, sub_agency, naics_codes,
				 psc_code, set_aside_code, place_of_performance, government_level,
				 estimated_value, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			ON CONFLICT (notice_id) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				set_aside_code = EXCLUDED.set_aside_code,
				place_of_performance = EXCLUDED.place_of_performance,
				estimated_value = EXCLUDED.estimated_value,
				status = EXCLUDED.status,
				updated_at = NOW()`,
			opp.ID, opp.NoticeID, opp.Title, opp.Description, opp.Agency, opp.SubAgency,
			naics, opp.PSCCode, opp.SetAsideCode, opp.PlaceOfPerformance,
			opp.GovernmentLevel, opp.EstimatedValue, opp.Status)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (h *Handler) bulkIndex(ctx context.Context, opportunities []*models.Opportunity) (int, error) {
	var buf bytes.Buffer
	count := 0
	for _, opp := range opportunities {
		if opp.NoticeID == "" {
			continue
		}
		meta := fmt.Sprintf(`{"index":{"_index":%q,"_id":%q}}`, h.config.IndexName, opp.NoticeID)
		doc, err := json.Marshal(opp)
		if err != nil {
			continue
		}
		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
		count++
	}
	if count == 0 {
		return 0, nil
	}

	res, err := h.es.Bulk(bytes.NewReader(buf.Bytes()),
		h.es.Bulk.WithContext(ctx),
		h.es.Bulk.WithIndex(h.config.IndexName))
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("bulk index failed: %s", res.String())
	}
	return count, nil
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
