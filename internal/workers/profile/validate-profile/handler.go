// internal/workers/profile/validate-profile/handler.go
package validateprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-profile"
)

var validStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true, "PR": true, "GU": true, "VI": true,
	"US": true,
}

var validBusinessSizes = map[string]bool{
	"small": true, "other_than_small": true, "large": true,
}

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "PROFILE_VALIDATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute validates and sanitizes a submitted company profile. Structural
// problems are reported as field errors in the output, not job failures;
// the workflow decides what to do with an invalid profile.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.Profile
	var fieldErrors []FieldError

	profile.CompanyName = strings.TrimSpace(profile.CompanyName)
	if profile.CompanyName == "" {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "companyName",
			Message: "company name is required",
		})
	}

	profile.UEI = strings.ToUpper(strings.TrimSpace(profile.UEI))
	if profile.UEI != "" && !validation.ValidateUEI(profile.UEI) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "uei",
			Message: "UEI must be 12 alphanumeric characters",
		})
	}

	profile.CageCode = strings.ToUpper(strings.TrimSpace(profile.CageCode))
	if profile.CageCode != "" && !validation.ValidateCAGECode(profile.CageCode) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "cageCode",
			Message: "CAGE code must be 5 alphanumeric characters",
		})
	}

	profile.NAICSCodes = dedupeUpper(profile.NAICSCodes)
	if len(profile.NAICSCodes) == 0 {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "naicsCodes",
			Message: "at least one NAICS code is required",
		})
	}
	for _, code := range profile.NAICSCodes {
		if !validation.ValidateNAICSCode(code) {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   "naicsCodes",
				Message: fmt.Sprintf("invalid NAICS code %q", code),
			})
		}
	}

	profile.ServiceStates = dedupeUpper(profile.ServiceStates)
	for _, state := range profile.ServiceStates {
		if !validStates[state] {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   "serviceStates",
				Message: fmt.Sprintf("invalid state code %q", state),
			})
		}
	}

	if profile.BusinessSize != "" {
		profile.BusinessSize = strings.ToLower(strings.TrimSpace(profile.BusinessSize))
		if !validBusinessSizes[profile.BusinessSize] {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   "businessSize",
				Message: fmt.Sprintf("unrecognized business size %q", profile.BusinessSize),
			})
		}
	}

	profile.WebsiteURL = strings.TrimSpace(profile.WebsiteURL)
	if profile.WebsiteURL != "" {
		parsed, err := url.Parse(profile.WebsiteURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   "websiteUrl",
				Message: "website URL must be absolute http(s)",
			})
		}
	}

	profile.Certifications = dedupeLower(profile.Certifications)
	profile.UpdatedAt = time.Now().UTC()

	output := &Output{
		IsValid: len(fieldErrors) == 0,
		Errors:  fieldErrors,
	}
	if output.IsValid {
		output.Sanitized = &profile
	}

	h.logger.Info("profile validated", map[string]interface{}{
		"profileId":  profile.ID,
		"isValid":    output.IsValid,
		"errorCount": len(fieldErrors),
	})

	return output, nil
}

func dedupeUpper(values []string) []string {
	return dedupe(values, strings.ToUpper)
}

func dedupeLower(values []string) []string {
	return dedupe(values, strings.ToLower)
}

func dedupe(values []string, normalize func(string) string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = normalize(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
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
