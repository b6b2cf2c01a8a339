// internal/matching/eligibility.go
package matching

import (
	"fmt"
	"strings"

	"govmatch-workers/internal/models"
	"govmatch-workers/pkg/catalog"
)

// Eligibility match classifications.
const (
	MatchTypeExact   = "exact"
	MatchTypePartial = "partial"
	MatchTypeNone    = "none"
)

// Eligibility scores per classification.
const (
	eligibilityScoreExact   = 100.0
	eligibilityScorePartial = 75.0
	eligibilityScoreOpen    = 50.0
	eligibilityScoreNone    = 0.0
)

// ResolveEligibility determines whether a holder of the given certifications
// may bid on an opportunity restricted to setAsideCode.
//
// An empty or unrecognized code means the opportunity carries no set-aside
// restriction the holder could violate, so it resolves as an open-competition
// neutral match. A specialized small-business program (8(a), HUBZone, SDVOSB,
// WOSB/EDWOSB) also qualifies the holder for the two general small-business
// codes, at reduced strength.
func ResolveEligibility(cat *catalog.Catalog, certificationIDs []string, setAsideCode string) models.EligibilityResult {
	code := strings.ToUpper(strings.TrimSpace(setAsideCode))

	def, known := cat.Get(code)
	if !known {
		return models.EligibilityResult{
			IsMatch:   true,
			MatchType: MatchTypeNone,
			Score:     eligibilityScoreOpen,
			SetAside:  code,
			Reason:    "no recognized set-aside restriction; open competition",
		}
	}

	eligible := cat.EligibleCodes(certificationIDs)
	for _, c := range eligible {
		if c == def.Code {
			return models.EligibilityResult{
				IsMatch:   true,
				MatchType: MatchTypeExact,
				Score:     eligibilityScoreExact,
				SetAside:  def.Code,
				Reason:    fmt.Sprintf("certifications directly qualify for %s (%s)", def.Code, def.Name),
			}
		}
	}

	// A specialized program holder may still compete for a general
	// small-business set-aside.
	if catalog.IsGeneralSmallBusiness(def.Code) {
		for _, c := range eligible {
			if catalog.IsSpecialized(c) {
				return models.EligibilityResult{
					IsMatch:   true,
					MatchType: MatchTypePartial,
					Score:     eligibilityScorePartial,
					SetAside:  def.Code,
					Reason:    fmt.Sprintf("%s eligibility qualifies for general small-business set-aside %s", c, def.Code),
				}
			}
		}
	}

	return models.EligibilityResult{
		IsMatch:   false,
		MatchType: MatchTypeNone,
		Score:     eligibilityScoreNone,
		SetAside:  def.Code,
		Reason:    fmt.Sprintf("certifications do not qualify for %s (%s)", def.Code, def.Name),
	}
}

// EligibleSetAsides lists every set-aside code the certification holder may
// bid under, ordered most-specific first (catalog priority ascending).
func EligibleSetAsides(cat *catalog.Catalog, certificationIDs []string) []string {
	return cat.EligibleCodes(certificationIDs)
}
