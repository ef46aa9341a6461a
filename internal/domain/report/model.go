package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Report is one generated result, visible only to its owner
type Report struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	InputData InputData `json:"inputData"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report types
const (
	TypeNumerology = "numerology"
	TypeAstrology  = "astrology"
	TypeTarot      = "tarot"
	TypeCustom     = "custom"
)

// Types lists every accepted report type
var Types = []string{TypeNumerology, TypeAstrology, TypeTarot, TypeCustom}

// ValidType reports whether t is a known report type
func ValidType(t string) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// InputData identifies the subject of a report. Keys other than fullName and
// dateOfBirth are kept in Extra and serialized flat next to them.
type InputData struct {
	FullName    string
	DateOfBirth string
	Extra       map[string]interface{}
}

const (
	keyFullName    = "fullName"
	keyDateOfBirth = "dateOfBirth"
)

// MarshalJSON implements json.Marshaler
func (in InputData) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(in.Extra)+2)
	for k, v := range in.Extra {
		out[k] = v
	}
	out[keyFullName] = in.FullName
	out[keyDateOfBirth] = in.DateOfBirth
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. The two required keys must be
// strings when present; emptiness is checked by Validate.
func (in *InputData) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*in = InputData{}
	for k, v := range raw {
		switch k {
		case keyFullName, keyDateOfBirth:
			if v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%s must be a string", k)
			}
			if k == keyFullName {
				in.FullName = s
			} else {
				in.DateOfBirth = s
			}
		default:
			if in.Extra == nil {
				in.Extra = make(map[string]interface{})
			}
			in.Extra[k] = v
		}
	}
	return nil
}

// Validate checks the required subject fields
func (in InputData) Validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(in.FullName) == "" {
		problems[keyFullName] = "fullName is required"
	}
	if strings.TrimSpace(in.DateOfBirth) == "" {
		problems[keyDateOfBirth] = "dateOfBirth is required"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// Result is computed by the server and never accepted from callers
type Result struct {
	LifePathNumber    int      `json:"lifePathNumber"`
	DestinyNumber     int      `json:"destinyNumber"`
	PersonalityNumber int      `json:"personalityNumber"`
	LuckyColor        string   `json:"luckyColor"`
	LuckyColors       []string `json:"luckyColors"`
	LuckyNumber       int      `json:"luckyNumber"`
	LuckyNumbers      []int    `json:"luckyNumbers"`
	CompatibleNumbers []int    `json:"compatibleNumbers"`
	PersonalYear      int      `json:"personalYear"`
	Compatibility     string   `json:"compatibility"`
	FortuneTelling    string   `json:"fortuneTelling"`
	Summary           string   `json:"summary"`
}
