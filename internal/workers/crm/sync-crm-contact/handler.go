// internal/workers/crm/sync-crm-contact/handler.go
package synccrmcontact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"govmatch-workers/internal/common/auth"
	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/common/validation"
	"govmatch-workers/internal/common/zoho"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "sync-crm-contact"
)

var (
	ErrIdentityLookupFailed = errors.New("IDENTITY_LOOKUP_FAILED")
	ErrCRMSyncFailed        = errors.New("CRM_SYNC_FAILED")
)

type Handler struct {
	config   *Config
	keycloak *auth.KeycloakClient
	crm      *zoho.CRMClient
	logger   logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		keycloak: auth.NewKeycloakClient(config.KeycloakBaseURL, config.KeycloakRealm, config.KeycloakClientID, config.KeycloakClientSecret),
		crm:      zoho.NewCRMClient(config.ZohoAPIKey, config.ZohoOAuthToken, config.ZohoBaseURL),
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, mapErrorToCode(err), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" && input.Email == "" {
		return nil, fmt.Errorf("userId or email is required")
	}
	if input.Email != "" && !validation.ValidateEmail(input.Email) {
		return nil, fmt.Errorf("invalid email: %s", input.Email)
	}

	user, err := h.lookupUser(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityLookupFailed, err)
	}

	contact := &zoho.Contact{
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       input.Phone,
		CompanyName: input.CompanyName,
		UEI:         input.UEI,
		Source:      input.LeadSource,
	}
	if contact.Source == "" {
		contact.Source = "platform"
	}

	existing, err := h.crm.SearchContacts(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrCRMSyncFailed, err)
	}

	if len(existing) > 0 {
		if err := h.crm.UpdateContact(ctx, existing[0].ID, contact); err != nil {
			return nil, fmt.Errorf("%w: update: %v", ErrCRMSyncFailed, err)
		}
		h.logger.Info("crm contact updated", map[string]interface{}{
			"contactId": existing[0].ID,
			"email":     user.Email,
		})
		return &Output{ContactID: existing[0].ID, Action: "updated", Synced: true}, nil
	}

	contactID, err := h.crm.CreateContact(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("%w: create: %v", ErrCRMSyncFailed, err)
	}

	h.logger.Info("crm contact created", map[string]interface{}{
		"contactId": contactID,
		"email":     user.Email,
	})

	return &Output{ContactID: contactID, Action: "created", Synced: true}, nil
}

func (h *Handler) lookupUser(ctx context.Context, input *Input) (*auth.User, error) {
	if input.UserID != "" {
		return h.keycloak.GetUser(ctx, input.UserID)
	}
	return h.keycloak.GetUserByEmail(ctx, input.Email)
}

func mapErrorToCode(err error) string {
	switch {
	case errors.Is(err, ErrIdentityLookupFailed):
		return "IDENTITY_LOOKUP_FAILED"
	case errors.Is(err, ErrCRMSyncFailed):
		return "CRM_SYNC_FAILED"
	default:
		return "SYNC_FAILED"
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
