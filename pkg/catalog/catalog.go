// pkg/catalog/catalog.go
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

func unmarshalStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// General small-business set-aside codes. Holders of any specialized
// small-business certification also qualify for these, but not vice versa.
const (
	CodeSmallBusinessTotal   = "SBA"
	CodeSmallBusinessPartial = "SBP"
)

// GeneralSmallBusinessCodes lists the codes subject to hierarchical fallback.
var GeneralSmallBusinessCodes = []string{CodeSmallBusinessTotal, CodeSmallBusinessPartial}

// specializedCodes are the "higher" set-asides whose holders automatically
// qualify for general small-business competitions.
var specializedCodes = []string{
	"8A", "8AN",
	"HZC", "HZS",
	"SDVOSBC", "SDVOSBS",
	"WOSB", "WOSBSS",
	"EDWOSB", "EDWOSBSS",
}

// Catalog is the immutable set-aside reference table plus NAICS-to-PSC
// defaults. Safe for unlimited concurrent readers.
type Catalog struct {
	byCode     map[string]SetAsideDefinition
	ordered    []SetAsideDefinition
	naicsToPSC map[string]string
	version    string
}

// Default returns the built-in catalog covering the standard SBA
// set-aside programs.
func Default() *Catalog {
	defs := []SetAsideDefinition{
		{
			Code: "8AN", Name: "8(a) Sole Source",
			FullName:              "8(a) Business Development Program Sole Source",
			Type:                  "sole_source",
			RelatedCertifications: []string{"8a"},
			ProcurementThreshold:  4500000,
			Priority:              1,
		},
		{
			Code: "8A", Name: "8(a) Set-Aside",
			FullName:              "8(a) Business Development Program Competitive",
			Type:                  "competitive",
			RelatedCertifications: []string{"8a"},
			Priority:              2,
		},
		{
			Code: "HZS", Name: "HUBZone Sole Source",
			FullName:              "Historically Underutilized Business Zone Sole Source",
			Type:                  "sole_source",
			RelatedCertifications: []string{"hubzone"},
			ProcurementThreshold:  4500000,
			Priority:              3,
		},
		{
			Code: "HZC", Name: "HUBZone Set-Aside",
			FullName:              "Historically Underutilized Business Zone Competitive",
			Type:                  "competitive",
			RelatedCertifications: []string{"hubzone"},
			Priority:              4,
		},
		{
			Code: "SDVOSBS", Name: "SDVOSB Sole Source",
			FullName:              "Service-Disabled Veteran-Owned Small Business Sole Source",
			Type:                  "sole_source",
			RelatedCertifications: []string{"sdvosb"},
			ProcurementThreshold:  4000000,
			Priority:              5,
		},
		{
			Code: "SDVOSBC", Name: "SDVOSB Set-Aside",
			FullName:              "Service-Disabled Veteran-Owned Small Business Competitive",
			Type:                  "competitive",
			RelatedCertifications: []string{"sdvosb"},
			Priority:              6,
		},
		{
			Code: "EDWOSBSS", Name: "EDWOSB Sole Source",
			FullName:              "Economically Disadvantaged Women-Owned Small Business Sole Source",
			Type:                  "sole_source",
			RelatedCertifications: []string{"edwosb"},
			ProcurementThreshold:  4000000,
			Priority:              7,
		},
		{
			Code: "EDWOSB", Name: "EDWOSB Set-Aside",
			FullName:              "Economically Disadvantaged Women-Owned Small Business Competitive",
			Type:                  "competitive",
			RelatedCertifications: []string{"edwosb"},
			Priority:              8,
		},
		{
			Code: "WOSBSS", Name: "WOSB Sole Source",
			FullName:              "Women-Owned Small Business Sole Source",
			Type:                  "sole_source",
			RelatedCertifications: []string{"wosb"},
			ProcurementThreshold:  4000000,
			Priority:              9,
		},
		{
			Code: "WOSB", Name: "WOSB Set-Aside",
			FullName:              "Women-Owned Small Business Competitive",
			Type:                  "competitive",
			RelatedCertifications: []string{"wosb"},
			Priority:              10,
		},
		{
			Code: "SBP", Name: "Partial Small Business Set-Aside",
			FullName:              "Partial Small Business Set-Aside",
			Type:                  "partial",
			RelatedCertifications: []string{"small-business"},
			Priority:              11,
		},
		{
			Code: "SBA", Name: "Total Small Business Set-Aside",
			FullName:              "Total Small Business Set-Aside",
			Type:                  "competitive",
			RelatedCertifications: []string{"small-business"},
			Priority:              12,
		},
	}

	naicsToPSC := map[string]string{
		"541511": "D302", // Custom computer programming
		"541512": "D307", // Computer systems design
		"541513": "D310", // Computer facilities management
		"541519": "D399", // Other computer related services
		"541611": "R408", // Management consulting
		"541330": "C211", // Engineering services
		"541990": "R499", // Other professional services
		"561210": "S216", // Facilities support
		"236220": "Y1AA", // Commercial building construction
	}

	c, err := build("builtin", defs, naicsToPSC)
	if err != nil {
		// Unreachable unless the built-in table itself is broken.
		panic(err)
	}
	return c
}

// Load reads and validates a catalog override file. Any schema or
// consistency problem is returned as an error; the caller is expected to
// fail startup.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(fileSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate catalog file: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("catalog file %s failed schema validation: %s", path, strings.Join(msgs, "; "))
	}

	var file File
	if err := unmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	return build(file.Version, file.SetAsides, file.NAICSToPSC)
}

func build(version string, defs []SetAsideDefinition, naicsToPSC map[string]string) (*Catalog, error) {
	byCode := make(map[string]SetAsideDefinition, len(defs))
	for _, def := range defs {
		if _, dup := byCode[def.Code]; dup {
			return nil, fmt.Errorf("duplicate set-aside code %q", def.Code)
		}
		byCode[def.Code] = def
	}

	ordered := make([]SetAsideDefinition, len(defs))
	copy(ordered, defs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	if naicsToPSC == nil {
		naicsToPSC = map[string]string{}
	}

	return &Catalog{
		byCode:     byCode,
		ordered:    ordered,
		naicsToPSC: naicsToPSC,
		version:    version,
	}, nil
}

// Version returns the catalog version tag.
func (c *Catalog) Version() string {
	return c.version
}

// Get looks up a set-aside definition by code.
func (c *Catalog) Get(code string) (SetAsideDefinition, bool) {
	def, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return def, ok
}

// All returns every definition sorted ascending by priority (most
// specific first).
func (c *Catalog) All() []SetAsideDefinition {
	out := make([]SetAsideDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// EligibleCodes computes the set-aside codes a holder of the given
// certifications is directly eligible for, sorted by priority.
func (c *Catalog) EligibleCodes(certificationIDs []string) []string {
	certSet := make(map[string]bool, len(certificationIDs))
	for _, id := range certificationIDs {
		certSet[strings.ToLower(strings.TrimSpace(id))] = true
	}

	var codes []string
	for _, def := range c.ordered {
		for _, related := range def.RelatedCertifications {
			if certSet[strings.ToLower(related)] {
				codes = append(codes, def.Code)
				break
			}
		}
	}
	return codes
}

// IsGeneralSmallBusiness reports whether code is one of the two general
// small-business set-asides.
func IsGeneralSmallBusiness(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, g := range GeneralSmallBusinessCodes {
		if code == g {
			return true
		}
	}
	return false
}

// IsSpecialized reports whether code is a specialized small-business
// set-aside whose holders fall back onto general small-business codes.
func IsSpecialized(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, s := range specializedCodes {
		if code == s {
			return true
		}
	}
	return false
}

// DefaultPSC returns the default PSC code for a NAICS code, if known.
func (c *Catalog) DefaultPSC(naicsCode string) (string, bool) {
	psc, ok := c.naicsToPSC[naicsCode]
	return psc, ok
}
