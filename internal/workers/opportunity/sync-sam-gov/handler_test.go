// internal/workers/opportunity/sync-sam-gov/handler_test.go
package syncsamgov

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"govmatch-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const samGovPage = `{
	"totalRecords": 1,
	"opportunitiesData": [{
		"noticeId": "N0001",
		"title": "Software Development Services",
		"description": "Custom application development",
		"fullParentPathName": "DEPT OF DEFENSE.DEPT OF THE NAVY",
		"subTier": "DEPT OF THE NAVY",
		"naicsCode": "541511",
		"classificationCode": "D302",
		"typeOfSetAside": "SBA",
		"postedDate": "2025-01-15",
		"responseDeadLine": "2025-02-15",
		"active": "Yes",
		"placeOfPerformance": {"state": {"code": "VA"}},
		"award": {"amount": "2500000"}
	}]
}`

func setupHandler(t *testing.T, samGovURL string) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	esServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors": false, "items": []}`))
	}))
	t.Cleanup(esServer.Close)

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esServer.URL}})
	require.NoError(t, err)

	cfg := &Config{
		BaseURL:   samGovURL,
		APIKey:    "test-key",
		IndexName: "opportunities",
		PageSize:  100,
		MaxPages:  3,
		Timeout:   10 * time.Second,
	}
	return NewHandler(cfg, db, esClient, logger.NewTestLogger(t)), mock
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_SyncsOnePage(t *testing.T) {
	samGov := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("postedFrom"))
		w.Write([]byte(samGovPage))
	}))
	defer samGov.Close()

	h, mock := setupHandler(t, samGov.URL)
	mock.ExpectExec("INSERT INTO opportunities").
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), &Input{
		PostedFrom: "2025-01-01",
		PostedTo:   "2025-01-31",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Fetched)
	assert.Equal(t, 1, output.Upserted)
	assert.Equal(t, 1, output.Indexed)
	assert.Equal(t, 1, output.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_RequiresDateRange(t *testing.T) {
	h, _ := setupHandler(t, "http://unused")

	_, err := h.Execute(context.Background(), &Input{})

	assert.Error(t, err)
}

func TestExecute_RateLimited(t *testing.T) {
	samGov := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer samGov.Close()

	h, _ := setupHandler(t, samGov.URL)

	_, err := h.Execute(context.Background(), &Input{
		PostedFrom: "2025-01-01",
		PostedTo:   "2025-01-31",
	})

	assert.ErrorIs(t, err, ErrSamGovRateLimited)
}

func TestExecute_ServiceUnavailable(t *testing.T) {
	samGov := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer samGov.Close()

	h, _ := setupHandler(t, samGov.URL)

	_, err := h.Execute(context.Background(), &Input{
		PostedFrom: "2025-01-01",
		PostedTo:   "2025-01-31",
	})

	assert.ErrorIs(t, err, ErrSamGovUnavailable)
}

// ==========================
// Normalization Tests
// ==========================

func TestNormalize(t *testing.T) {
	h, _ := setupHandler(t, "http://unused")

	rec := samGovOpportunity{
		NoticeID:           "N0001",
		Title:              "Software Development Services",
		Department:         "DEPT OF DEFENSE.DEPT OF THE NAVY",
		SubTier:            "DEPT OF THE NAVY",
		NAICSCode:          "541511",
		ClassificationCode: "D302",
		TypeOfSetAside:     " sba ",
		Active:             "Yes",
	}
	rec.PlaceOfPerformance.State.Code = "VA"
	rec.Award.Amount = "2500000"

	opp := h.normalize(&rec)

	assert.Equal(t, "DEPT OF DEFENSE", opp.Agency)
	assert.Equal(t, "SBA", opp.SetAsideCode)
	assert.Equal(t, []string{"541511"}, opp.NAICSCodes)
	assert.Equal(t, "VA", opp.PlaceOfPerformance)
	assert.Equal(t, 2500000.0, opp.EstimatedValue)
	assert.Equal(t, "active", opp.Status)
	assert.Equal(t, "federal", opp.GovernmentLevel)
	assert.NotEmpty(t, opp.ID)
}

func TestToStandardError(t *testing.T) {
	h, _ := setupHandler(t, "http://unused")

	assert.Equal(t, "SAM_GOV_RATE_LIMITED", string(h.toStandardError(ErrSamGovRateLimited).Code))
	assert.True(t, h.toStandardError(ErrSamGovRateLimited).Retryable)
	assert.Equal(t, "SAM_GOV_TIMEOUT", string(h.toStandardError(ErrSamGovTimeout).Code))
	assert.Equal(t, "SAM_GOV_UNAVAILABLE", string(h.toStandardError(ErrSamGovUnavailable).Code))
}
