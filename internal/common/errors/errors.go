// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProfileIncomplete       ErrorCode = "PROFILE_INCOMPLETE"
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"
	ErrCodeProfileNotFound         ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeOpportunityNotFound     ErrorCode = "OPPORTUNITY_NOT_FOUND"

	ErrCodeCatalogLoadFailed       ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogValidationFailed ErrorCode = "CATALOG_VALIDATION_FAILED"
	ErrCodeWeightsInvalid          ErrorCode = "WEIGHTS_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateMatchScore      ErrorCode = "DUPLICATE_MATCH_SCORE"
	ErrCodeMatchScoreNotFound       ErrorCode = "MATCH_SCORE_NOT_FOUND"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeSamGovUnavailable ErrorCode = "SAM_GOV_UNAVAILABLE"
	ErrCodeSamGovTimeout     ErrorCode = "SAM_GOV_TIMEOUT"
	ErrCodeSamGovRateLimited ErrorCode = "SAM_GOV_RATE_LIMITED"

	ErrCodeAwardHistoryUnavailable ErrorCode = "AWARD_HISTORY_UNAVAILABLE"

	ErrCodeInsightsTimeout          ErrorCode = "INSIGHTS_TIMEOUT"
	ErrCodeInsightsGenerationFailed ErrorCode = "INSIGHTS_GENERATION_FAILED"

	ErrCodeIdentityLookupFailed ErrorCode = "IDENTITY_LOOKUP_FAILED"
	ErrCodeCRMSyncFailed        ErrorCode = "CRM_SYNC_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewProfileIncompleteError creates a non-retryable error for profiles
// missing required scoring inputs.
func NewProfileIncompleteError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileIncomplete,
		Message:   "Company profile is missing required fields",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileValidationFailedError creates a non-retryable profile validation error.
func NewProfileValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileValidationFailed,
		Message:   "Company profile validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable profile lookup error.
func NewProfileNotFoundError(profileID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Company profile not found",
		Details:   fmt.Sprintf("profileId: %s", profileID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOpportunityNotFoundError creates a non-retryable opportunity lookup error.
func NewOpportunityNotFoundError(opportunityID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOpportunityNotFound,
		Message:   "Opportunity not found",
		Details:   fmt.Sprintf("opportunityId: %s", opportunityID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadFailedError creates a non-retryable catalog load error.
// Catalog problems are configuration errors and must fail fast.
func NewCatalogLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Set-aside catalog could not be loaded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogValidationFailedError creates a non-retryable catalog schema error.
func NewCatalogValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogValidationFailed,
		Message:   "Set-aside catalog failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWeightsInvalidError creates a non-retryable scoring weight error.
func NewWeightsInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWeightsInvalid,
		Message:   "Scoring factor weights are invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryTypeError creates a non-retryable invalid query type error.
func NewInvalidQueryTypeError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryType,
		Message:   "Unsupported query type",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateMatchScoreError creates a non-retryable duplicate score error.
func NewDuplicateMatchScoreError(profileID, opportunityID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateMatchScore,
		Message:   "Match score already exists for this profile and opportunity",
		Details:   fmt.Sprintf("profileId: %s, opportunityId: %s", profileID, opportunityID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchScoreNotFoundError creates a non-retryable score lookup error.
func NewMatchScoreNotFoundError(matchID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchScoreNotFound,
		Message:   "Match score not found",
		Details:   fmt.Sprintf("matchId: %s", matchID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSamGovUnavailableError creates a retryable SAM.gov availability error.
func NewSamGovUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSamGovUnavailable,
		Message:   "SAM.gov API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSamGovTimeoutError creates a retryable SAM.gov timeout error.
func NewSamGovTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSamGovTimeout,
		Message:   "SAM.gov API timeout",
		Details:   "API call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSamGovRateLimitedError creates a retryable SAM.gov rate limit error.
func NewSamGovRateLimitedError(retryAfter string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSamGovRateLimited,
		Message:   "SAM.gov API rate limit exceeded",
		Details:   fmt.Sprintf("retryAfter: %s", retryAfter),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAwardHistoryUnavailableError creates a retryable award history error.
func NewAwardHistoryUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAwardHistoryUnavailable,
		Message:   "USAspending award history API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInsightsTimeoutError creates a retryable insights generation timeout error.
func NewInsightsTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInsightsTimeout,
		Message:   "Match insights generation timeout",
		Details:   "LLM call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInsightsGenerationFailedError creates a retryable insights generation error.
func NewInsightsGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsightsGenerationFailed,
		Message:   "Match insights generation error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIdentityLookupFailedError creates a retryable identity provider error.
func NewIdentityLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIdentityLookupFailed,
		Message:   "Identity provider lookup error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMSyncFailedError creates a retryable CRM sync error.
func NewCRMSyncFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMSyncFailed,
		Message:   "CRM contact sync failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_ERROR",
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (same as internal).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeProfileIncomplete:             "PROFILE_INCOMPLETE",
	ErrCodeProfileValidationFailed:       "PROFILE_VALIDATION_FAILED",
	ErrCodeProfileNotFound:               "PROFILE_NOT_FOUND",
	ErrCodeOpportunityNotFound:           "OPPORTUNITY_NOT_FOUND",
	ErrCodeCatalogLoadFailed:             "CATALOG_LOAD_FAILED",
	ErrCodeCatalogValidationFailed:       "CATALOG_VALIDATION_FAILED",
	ErrCodeWeightsInvalid:                "WEIGHTS_INVALID",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:                  "QUERY_TIMEOUT",
	ErrCodeInvalidQueryType:              "INVALID_QUERY_TYPE",
	ErrCodeDatabaseInsertFailed:          "DATABASE_INSERT_FAILED",
	ErrCodeDuplicateMatchScore:           "DUPLICATE_MATCH_SCORE",
	ErrCodeMatchScoreNotFound:            "MATCH_SCORE_NOT_FOUND",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:                 "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:                 "INDEX_NOT_FOUND",
	ErrCodeSamGovUnavailable:             "SAM_GOV_UNAVAILABLE",
	ErrCodeSamGovTimeout:                 "SAM_GOV_TIMEOUT",
	ErrCodeSamGovRateLimited:             "SAM_GOV_RATE_LIMITED",
	ErrCodeAwardHistoryUnavailable:       "AWARD_HISTORY_UNAVAILABLE",
	ErrCodeInsightsTimeout:               "INSIGHTS_TIMEOUT",
	ErrCodeInsightsGenerationFailed:      "INSIGHTS_GENERATION_FAILED",
	ErrCodeIdentityLookupFailed:          "IDENTITY_LOOKUP_FAILED",
	ErrCodeCRMSyncFailed:                 "CRM_SYNC_FAILED",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeSamGovUnavailable,
		ErrCodeAwardHistoryUnavailable,
		ErrCodeIdentityLookupFailed,
		ErrCodeCRMSyncFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeInsightsGenerationFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodeSamGovTimeout,
		ErrCodeSamGovRateLimited:
		return 2 // Partial retry for timeouts

	case ErrCodeInsightsTimeout:
		return 1 // As per BPMN boundary event

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "WEIGHTS"):
		return "REFERENCE_DATA"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "MATCH_SCORE"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "SAM_GOV") || strings.Contains(codeStr, "AWARD"):
		return "GOV_DATA"
	case strings.Contains(codeStr, "INSIGHTS"):
		return "AI"
	case strings.Contains(codeStr, "CRM") || strings.Contains(codeStr, "IDENTITY"):
		return "CRM"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
