package domain

import (
	"regexp"
	"strings"

	"github.com/judgefinder/platform/pkg/result"
)

// BarNumber identifies an attorney's bar registration in one state. It can
// only be built through NewBarNumber, so an instance is always valid.
type BarNumber struct {
	stateCode string
	number    string
}

var stateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {},
	"DC": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {},
	"KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {}, "MI": {}, "MN": {},
	"MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {}, "NM": {},
	"NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {},
	"SC": {}, "SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {},
	"WV": {}, "WI": {}, "WY": {},
}

var defaultBarPattern = regexp.MustCompile(`^\d{4,8}$`)

// A few bars deviate from the plain numeric format.
var barPatternOverrides = map[string]*regexp.Regexp{
	"CA": regexp.MustCompile(`^\d{1,6}$`),
	"NY": regexp.MustCompile(`^\d{7}$`),
	"TX": regexp.MustCompile(`^\d{8}$`),
	"WA": regexp.MustCompile(`^\d{1,5}$`),
}

// NewBarNumber validates the state code and the per-state number format.
func NewBarNumber(stateCode, number string) result.Result[BarNumber] {
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	number = strings.TrimSpace(number)

	if _, ok := stateCodes[stateCode]; !ok {
		return result.Err[BarNumber](result.NewValidationError(
			"bar_number_unknown_state", "state code is not a recognized jurisdiction",
			map[string]any{"state_code": stateCode}))
	}

	pattern := defaultBarPattern
	if override, ok := barPatternOverrides[stateCode]; ok {
		pattern = override
	}
	if !pattern.MatchString(number) {
		return result.Err[BarNumber](result.NewValidationError(
			"bar_number_invalid_format", "bar number does not match the state's format",
			map[string]any{"state_code": stateCode, "number": number}))
	}

	return result.Ok(BarNumber{stateCode: stateCode, number: number})
}

func (b BarNumber) StateCode() string { return b.stateCode }
func (b BarNumber) Number() string    { return b.number }

// String renders the canonical "STATE-NUMBER" form.
func (b BarNumber) String() string {
	return b.stateCode + "-" + b.number
}
