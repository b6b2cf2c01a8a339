// internal/matching/scorer.go
package matching

import (
	"math"
	"strings"

	"govmatch-workers/internal/models"
	"govmatch-workers/pkg/catalog"
)

// Scorer computes rule-based match scores between company profiles and
// opportunities. It is stateless after construction and safe for concurrent
// use. Construction fails if the weight table violates the sum-to-100
// invariant, so a running Scorer can never produce a mis-weighted score.
type Scorer struct {
	catalog *catalog.Catalog
	weights Weights
}

// NewScorer validates the weight table up front and binds the set-aside
// catalog used for the eligibility component of Strategic Fit.
func NewScorer(cat *catalog.Catalog, weights Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return &Scorer{catalog: cat, weights: weights}, nil
}

// factorResult is the internal accumulator for one category: a sub-score in
// [0,100], an explanation, and how much of the needed input was present.
type factorResult struct {
	score     float64
	details   string
	resolved  int
	attempted int
}

func (f factorResult) toModel(weight int) models.FactorScore {
	return models.FactorScore{
		Score:           f.score,
		Weight:          float64(weight),
		Details:         f.details,
		FieldsResolved:  f.resolved,
		FieldsAttempted: f.attempted,
	}
}

// Calculate produces the composite match score for one profile/opportunity
// pair. It is deterministic: identical inputs always yield identical scores.
// A nil or empty profile yields the neutral baseline with zero confidence
// rather than an error.
func (s *Scorer) Calculate(profile *models.CompanyProfile, opp *models.Opportunity) models.MatchScore {
	eligibility := ResolveEligibility(s.catalog, certificationIDs(profile), oppSetAside(opp))

	if isEmptyProfile(profile) {
		return s.neutralScore(profile, opp, eligibility)
	}

	pp := s.scorePastPerformance(profile, opp)
	tc := s.scoreTechnicalCapability(profile, opp)
	sf := s.scoreStrategicFit(profile, opp, eligibility)
	cr := s.scoreCredibility(profile)

	overall := pp.score*float64(s.weights.PastPerformance)/100 +
		tc.score*float64(s.weights.TechnicalCapability)/100 +
		sf.score*float64(s.weights.StrategicFit)/100 +
		cr.score*float64(s.weights.Credibility)/100

	return models.MatchScore{
		ProfileID:     profile.ID,
		OpportunityID: oppID(opp),
		OverallScore:  clampScore(int(math.Round(overall))),
		Confidence:    averageConfidence(pp, tc, sf, cr),
		DetailedFactors: models.DetailedFactors{
			PastPerformance:     pp.toModel(s.weights.PastPerformance),
			TechnicalCapability: tc.toModel(s.weights.TechnicalCapability),
			StrategicFit:        sf.toModel(s.weights.StrategicFit),
			Credibility:         cr.toModel(s.weights.Credibility),
		},
		Eligibility:      eligibility,
		AlgorithmVersion: AlgorithmVersion,
		ScoringMethod:    ScoringMethod,
	}
}

// neutralScore is the documented fallback for a profile with no usable data:
// every category sits at the neutral baseline and confidence is zero, so an
// incomplete profile is flagged as unknown instead of being penalized.
func (s *Scorer) neutralScore(profile *models.CompanyProfile, opp *models.Opportunity, eligibility models.EligibilityResult) models.MatchScore {
	neutral := func(attempted int) factorResult {
		return factorResult{
			score:     NeutralScore,
			details:   "Insufficient profile data; neutral baseline applied",
			resolved:  0,
			attempted: attempted,
		}
	}
	pp := neutral(2)
	tc := neutral(3)
	sf := neutral(3)
	cr := neutral(3)

	profileID := ""
	if profile != nil {
		profileID = profile.ID
	}
	return models.MatchScore{
		ProfileID:     profileID,
		OpportunityID: oppID(opp),
		OverallScore:  int(NeutralScore),
		Confidence:    0,
		DetailedFactors: models.DetailedFactors{
			PastPerformance:     pp.toModel(s.weights.PastPerformance),
			TechnicalCapability: tc.toModel(s.weights.TechnicalCapability),
			StrategicFit:        sf.toModel(s.weights.StrategicFit),
			Credibility:         cr.toModel(s.weights.Credibility),
		},
		Eligibility:      eligibility,
		AlgorithmVersion: AlgorithmVersion,
		ScoringMethod:    ScoringMethod,
	}
}

// --- Past Performance (agency track record, contract history) ---

func (s *Scorer) scorePastPerformance(p *models.CompanyProfile, o *models.Opportunity) factorResult {
	r := factorResult{attempted: 2}

	agencyScore := NeutralScore
	if len(p.AgencyHistory) > 0 {
		r.resolved++
		switch {
		case o != nil && containsFold(p.AgencyHistory, o.Agency):
			agencyScore = 100
			r.details = "Direct experience with " + o.Agency
		case o != nil && o.SubAgency != "" && containsFold(p.AgencyHistory, o.SubAgency):
			agencyScore = 80
			r.details = "Experience with sub-agency " + o.SubAgency
		default:
			agencyScore = 40
			r.details = "Federal agency experience, none with the buying agency"
		}
	}

	historyScore := NeutralScore
	if len(p.ContractHistory) > 0 {
		r.resolved++
		switch {
		case o != nil && hasContractWithNAICS(p.ContractHistory, o.NAICSCodes):
			historyScore = 100
		case o != nil && hasContractWithAgency(p.ContractHistory, o.Agency):
			historyScore = 80
		case len(p.ContractHistory) >= 3:
			historyScore = 60
		default:
			historyScore = 40
		}
	}

	r.score = (agencyScore + historyScore) / 2
	if r.details == "" {
		r.details = "Limited past-performance data available"
	}
	return r
}

// --- Technical Capability (NAICS overlap, certifications, competencies) ---

func (s *Scorer) scoreTechnicalCapability(p *models.CompanyProfile, o *models.Opportunity) factorResult {
	r := factorResult{attempted: 3}

	naicsScore := NeutralScore
	if o != nil && len(o.NAICSCodes) > 0 && len(p.NAICSCodes) > 0 {
		r.resolved++
		naicsScore = naicsOverlapScore(p.NAICSCodes, o.NAICSCodes)
		if naicsScore >= 100 {
			r.details = "NAICS codes match the solicitation exactly"
		} else if naicsScore > 0 {
			r.details = "Partial NAICS alignment with the solicitation"
		} else {
			r.details = "No NAICS overlap with the solicitation"
		}
	}

	certScore := NeutralScore
	if len(p.Certifications) > 0 {
		r.resolved++
		switch {
		case len(p.Certifications) >= 3:
			certScore = 100
		case len(p.Certifications) == 2:
			certScore = 80
		default:
			certScore = 70
		}
	}

	competencyScore := NeutralScore
	if len(p.CoreCompetencies) > 0 && o != nil && (o.Title != "" || o.Description != "") {
		r.resolved++
		if competencyOverlaps(p.CoreCompetencies, o.Title+" "+o.Description) {
			competencyScore = 90
		} else {
			competencyScore = 40
		}
	}

	r.score = (naicsScore + certScore + competencyScore) / 3
	if r.details == "" {
		r.details = "Capability fit estimated from available profile fields"
	}
	return r
}

// --- Strategic Fit (geography, government level, set-aside eligibility) ---

func (s *Scorer) scoreStrategicFit(p *models.CompanyProfile, o *models.Opportunity, eligibility models.EligibilityResult) factorResult {
	r := factorResult{attempted: 3}

	// The eligibility determination itself always resolves: an opportunity
	// with no set-aside restriction contributes the neutral open-competition
	// score rather than dropping the component.
	r.resolved++
	eligibilityScore := eligibility.Score

	geoScore := NeutralScore
	if o != nil && o.PlaceOfPerformance != "" && len(p.ServiceStates) > 0 {
		r.resolved++
		switch {
		case containsFold(p.ServiceStates, o.PlaceOfPerformance):
			geoScore = 100
		case containsFold(p.ServiceStates, "US"):
			geoScore = 80
		default:
			geoScore = 30
		}
	}

	govScore := NeutralScore
	if o != nil && o.GovernmentLevel != "" && len(p.GovernmentLevels) > 0 {
		r.resolved++
		if containsFold(p.GovernmentLevels, o.GovernmentLevel) {
			govScore = 100
		} else {
			govScore = 40
		}
	}

	r.score = (eligibilityScore + geoScore + govScore) / 3
	switch eligibility.MatchType {
	case MatchTypeExact:
		r.details = "Directly eligible for the " + eligibility.SetAside + " set-aside"
	case MatchTypePartial:
		r.details = "Eligible for the " + eligibility.SetAside + " set-aside via a specialized program"
	default:
		if eligibility.IsMatch {
			r.details = "Open competition; positioning judged on geography and level"
		} else {
			r.details = "Not eligible for the " + eligibility.SetAside + " set-aside"
		}
	}
	return r
}

// --- Credibility (registration, size standard, web presence) ---

func (s *Scorer) scoreCredibility(p *models.CompanyProfile) factorResult {
	r := factorResult{attempted: 3}

	samScore := NeutralScore
	if p.SamRegistered || p.SamStatus != "" {
		r.resolved++
		switch {
		case p.SamRegistered && strings.EqualFold(p.SamStatus, "active"):
			samScore = 100
			r.details = "Active SAM registration"
		case p.SamRegistered:
			samScore = 70
			r.details = "SAM registered, status " + p.SamStatus
		default:
			samScore = 20
			r.details = "Not SAM registered"
		}
	}

	sizeScore := NeutralScore
	if p.BusinessSize != "" {
		r.resolved++
		if strings.EqualFold(p.BusinessSize, "small") {
			sizeScore = 100
		} else {
			sizeScore = 70
		}
	}

	webScore := NeutralScore
	if p.WebsiteURL != "" {
		r.resolved++
		webScore = 90
	}

	r.score = (samScore + sizeScore + webScore) / 3
	if r.details == "" {
		r.details = "Market presence estimated from available profile fields"
	}
	return r
}

// --- helpers ---

// naicsOverlapScore averages, over the opportunity's NAICS codes, the best
// credit any profile code earns against it: exact match 100, same four-digit
// industry group 60. Adding a profile code can only raise a best credit, so
// the score is monotone in the profile's code list.
func naicsOverlapScore(profileCodes, oppCodes []string) float64 {
	var total float64
	for _, oc := range oppCodes {
		best := 0.0
		for _, pc := range profileCodes {
			switch {
			case pc == oc:
				best = 100
			case len(pc) >= 4 && len(oc) >= 4 && pc[:4] == oc[:4] && best < 60:
				best = 60
			}
			if best == 100 {
				break
			}
		}
		total += best
	}
	return total / float64(len(oppCodes))
}

func competencyOverlaps(competencies []string, text string) bool {
	lower := strings.ToLower(text)
	for _, c := range competencies {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

func hasContractWithNAICS(contracts []models.PastContract, codes []string) bool {
	for _, c := range contracts {
		if c.NAICSCode != "" && containsFold(codes, c.NAICSCode) {
			return true
		}
	}
	return false
}

func hasContractWithAgency(contracts []models.PastContract, agency string) bool {
	if agency == "" {
		return false
	}
	for _, c := range contracts {
		if strings.EqualFold(c.Agency, agency) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}

func averageConfidence(factors ...factorResult) float64 {
	if len(factors) == 0 {
		return 0
	}
	var sum float64
	for _, f := range factors {
		if f.attempted > 0 {
			sum += float64(f.resolved) / float64(f.attempted)
		}
	}
	return sum / float64(len(factors))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func isEmptyProfile(p *models.CompanyProfile) bool {
	if p == nil {
		return true
	}
	return p.CompanyName == "" &&
		len(p.NAICSCodes) == 0 &&
		len(p.Certifications) == 0 &&
		len(p.AgencyHistory) == 0 &&
		len(p.ContractHistory) == 0
}

func certificationIDs(p *models.CompanyProfile) []string {
	if p == nil {
		return nil
	}
	return p.Certifications
}

func oppSetAside(o *models.Opportunity) string {
	if o == nil {
		return ""
	}
	return o.SetAsideCode
}

func oppID(o *models.Opportunity) string {
	if o == nil {
		return ""
	}
	return o.ID
}
