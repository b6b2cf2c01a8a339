// internal/workers/matching/save-match-score/handler_test.go
package savematchscore

import (
	"context"
	"testing"
	"time"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(&Config{Timeout: 10 * time.Second}, db, logger.NewTestLogger(t))
	return h, mock
}

func createTestInput() *Input {
	return &Input{
		ProfileID:     "profile-123",
		OpportunityID: "opp-456",
		OverallScore:  87,
		Confidence:    0.92,
		DetailedFactors: models.DetailedFactors{
			PastPerformance:     models.FactorScore{Score: 90, Weight: 35},
			TechnicalCapability: models.FactorScore{Score: 85, Weight: 35},
			StrategicFit:        models.FactorScore{Score: 80, Weight: 15},
			Credibility:         models.FactorScore{Score: 95, Weight: 15},
		},
		Eligibility: models.EligibilityResult{
			IsMatch:   true,
			MatchType: "partial",
			Score:     75,
			SetAside:  "SBA",
		},
		AlgorithmVersion: "v2.1.0",
		ScoringMethod:    "weighted_rules",
	}
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_UpsertsAndWritesAudit(t *testing.T) {
	h, mock := setupHandler(t)

	mock.ExpectQuery("INSERT INTO match_scores").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("score-789"))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.Equal(t, "score-789", output.MatchScoreID)
	assert.True(t, output.Saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_AuditFailureDoesNotFailJob(t *testing.T) {
	h, mock := setupHandler(t)

	mock.ExpectQuery("INSERT INTO match_scores").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("score-789"))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnError(context.DeadlineExceeded)

	output, err := h.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.True(t, output.Saved)
}

func TestExecute_UpsertFailure(t *testing.T) {
	h, mock := setupHandler(t)

	mock.ExpectQuery("INSERT INTO match_scores").
		WillReturnError(context.DeadlineExceeded)

	_, err := h.Execute(context.Background(), createTestInput())

	assert.Error(t, err)
}

func TestExecute_MissingIdentifiers(t *testing.T) {
	h, _ := setupHandler(t)

	tests := []struct {
		name  string
		input *Input
	}{
		{"missing profile id", &Input{OpportunityID: "opp-456"}},
		{"missing opportunity id", &Input{ProfileID: "profile-123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			assert.Error(t, err)
		})
	}
}
