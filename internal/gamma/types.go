package gamma

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LooseString tolerates identifiers emitted as either JSON strings or
// bare numbers.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	// Bare number: keep the literal digits.
	*s = LooseString(data)
	return nil
}

// LooseFloat tolerates numeric fields emitted as either JSON numbers or
// numeric strings. Unparsable input decodes to zero rather than failing
// the surrounding record.
type LooseFloat float64

func (f *LooseFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = LooseFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = LooseFloat(v)
	return nil
}

// StringList handles list fields that the API emits either as a plain
// JSON array or as a double-encoded JSON array string
// (`"[\"123\", \"456\"]"`), which is how clobTokenIds and outcomePrices
// usually arrive.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, (*[]string)(l))
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	return json.Unmarshal([]byte(s), (*[]string)(l))
}

// RawMarket is one market/event record as returned by the Gamma API.
// The API is inconsistent about key naming across endpoints, so both
// variants are declared where they exist; consumers must check for
// presence with fallbacks rather than assume a fixed schema.
type RawMarket struct {
	ID       LooseString `json:"id"`
	EventID  LooseString `json:"event_id"`
	MarketID LooseString `json:"market_id"`

	Question string `json:"question"`
	Title    string `json:"title"`

	Category     string `json:"category"`
	CategoryName string `json:"category_name"`

	TokenID           LooseString `json:"token_id"`
	CLOBTokenIDs      StringList  `json:"clobTokenIds"`
	CLOBTokenIDsSnake StringList  `json:"clob_token_ids"`

	StartDate      string `json:"startDate"`
	StartDateSnake string `json:"start_date"`
	EndDate        string `json:"endDate"`
	EndDateSnake   string `json:"end_date"`

	Resolution string `json:"resolution"`
	Resolved   bool   `json:"resolved"`
	Closed     bool   `json:"closed"`
	Active     bool   `json:"active"`

	OutcomePrices      StringList `json:"outcomePrices"`
	OutcomePricesSnake StringList `json:"outcome_prices"`

	Volume      LooseFloat `json:"volume"`
	VolumeNum   LooseFloat `json:"volumeNum"`
	VolumeSnake LooseFloat `json:"volume_num"`
}

// ParsePriceString parses one outcome price entry. ok=false for
// entries that are not numeric.
func ParsePriceString(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Tag is a provider-side categorical label, distinct from the free-text
// category field on markets.
type Tag struct {
	ID    LooseString `json:"id"`
	Label string      `json:"label"`
	Slug  string      `json:"slug"`
}

// recordList accepts both response shapes the API uses for listings:
// a bare JSON array, or an object wrapping the array under a known key.
type recordList []RawMarket

func (r *recordList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, (*[]RawMarket)(r))
	}
	var wrapped struct {
		Markets []RawMarket `json:"markets"`
		Events  []RawMarket `json:"events"`
		Data    []RawMarket `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	switch {
	case wrapped.Markets != nil:
		*r = wrapped.Markets
	case wrapped.Events != nil:
		*r = wrapped.Events
	default:
		*r = wrapped.Data
	}
	return nil
}

// tagList accepts a bare array or an object wrapping the tags.
type tagList []Tag

func (t *tagList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, (*[]Tag)(t))
	}
	var wrapped struct {
		Tags []Tag `json:"tags"`
		Data []Tag `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Tags != nil {
		*t = wrapped.Tags
		return nil
	}
	*t = wrapped.Data
	return nil
}
