// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/common/metrics"
	"govmatch-workers/internal/matching"
	"govmatch-workers/internal/models"
	"govmatch-workers/pkg/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-match-score"
)

type Handler struct {
	config *Config
	scorer *matching.Scorer
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

// NewHandler fails if the scoring weight table is invalid, so a worker with
// a broken weighting never starts.
func NewHandler(config *Config, cat *catalog.Catalog, db *sql.DB, redis *redis.Client, log logger.Logger) (*Handler, error) {
	scorer, err := matching.NewScorer(cat, matching.DefaultWeights())
	if err != nil {
		return nil, err
	}
	return &Handler{
		config: config,
		scorer: scorer,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
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
		h.failJob(client, job, "MATCH_SCORE_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	opp := input.Opportunity
	if opp == nil && input.OpportunityID != "" {
		var err error
		opp, err = h.getOpportunity(ctx, input.OpportunityID)
		if err != nil {
			return nil, fmt.Errorf("opportunity %s: %w", input.OpportunityID, err)
		}
	}
	if opp == nil {
		return nil, fmt.Errorf("no opportunity provided")
	}

	profile := input.Profile
	if profile == nil && input.ProfileID != "" {
		var err error
		profile, err = h.getCompanyProfile(ctx, input.ProfileID)
		if err != nil {
			// A missing profile degrades to the neutral baseline score
			// instead of failing the job.
			h.logger.Warn("failed to fetch company profile", map[string]interface{}{
				"profileId": input.ProfileID,
				"error":     err,
			})
		}
	}

	score := h.scorer.Calculate(profile, opp)
	metrics.MatchScoresCalculated.WithLabelValues(score.Eligibility.MatchType).Inc()

	h.logger.Info("match score calculated", map[string]interface{}{
		"profileId":     input.ProfileID,
		"opportunityId": opp.ID,
		"overallScore":  score.OverallScore,
		"confidence":    score.Confidence,
		"matchType":     score.Eligibility.MatchType,
	})

	return &Output{
		OverallScore:     score.OverallScore,
		Confidence:       score.Confidence,
		DetailedFactors:  score.DetailedFactors,
		Eligibility:      score.Eligibility,
		AlgorithmVersion: score.AlgorithmVersion,
		ScoringMethod:    score.ScoringMethod,
	}, nil
}

func (h *Handler) getCompanyProfile(ctx context.Context, profileID string) (*models.CompanyProfile, error) {
	cacheKey := "company:profile:" + profileID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.CompanyProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, company_name, uei, naics_codes, core_competencies, certifications,
		       agency_history, contract_history, service_states, government_levels,
		       sam_registered, sam_status, business_size, website_url
		FROM company_profiles WHERE id = $1`, profileID)

	var profile models.CompanyProfile
	var naics, competencies, certs, agencies, contracts, states, levels []byte
	var uei, samStatus, businessSize, websiteURL sql.NullString
	err := row.Scan(&profile.ID, &profile.CompanyName, &uei, &naics, &competencies, &certs,
		&agencies, &contracts, &states, &levels,
		&profile.SamRegistered, &samStatus, &businessSize, &websiteURL)
	if err != nil {
		return nil, err
	}

	profile.UEI = uei.String
	profile.SamStatus = samStatus.String
	profile.BusinessSize = businessSize.String
	profile.WebsiteURL = websiteURL.String
	unmarshalList(naics, &profile.NAICSCodes)
	unmarshalList(competencies, &profile.CoreCompetencies)
	unmarshalList(certs, &profile.Certifications)
	unmarshalList(agencies, &profile.AgencyHistory)
	unmarshalList(states, &profile.ServiceStates)
	unmarshalList(levels, &profile.GovernmentLevels)
	if len(contracts) > 0 {
		if err := json.Unmarshal(contracts, &profile.ContractHistory); err != nil {
			profile.ContractHistory = nil
		}
	}

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &profile, nil
}

func (h *Handler) getOpportunity(ctx context.Context, opportunityID string) (*models.Opportunity, error) {
	cacheKey := "opportunity:" + opportunityID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var opp models.Opportunity
		if err := json.Unmarshal([]byte(val), &opp); err == nil {
			return &opp, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, notice_id, title, description, agency, sub_agency, naics_codes,
		       psc_code, set_aside_code, place_of_performance, government_level, status
		FROM opportunities WHERE id = $1`, opportunityID)

	var opp models.Opportunity
	var naics []byte
	var description, subAgency, psc, setAside, place, level sql.NullString
	err := row.Scan(&opp.ID, &opp.NoticeID, &opp.Title, &description, &opp.Agency, &subAgency,
		&naics, &psc, &setAside, &place, &level, &opp.Status)
	if err != nil {
		return nil, err
	}

	opp.Description = description.String
	opp.SubAgency = subAgency.String
	opp.PSCCode = psc.String
	opp.SetAsideCode = setAside.String
	opp.PlaceOfPerformance = place.String
	opp.GovernmentLevel = level.String
	unmarshalList(naics, &opp.NAICSCodes)

	data, _ := json.Marshal(opp)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &opp, nil
}

func unmarshalList(data []byte, dst *[]string) {
	if len(data) == 0 {
		*dst = nil
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		*dst = nil
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
