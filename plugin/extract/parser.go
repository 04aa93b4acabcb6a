package extract

import (
	"encoding/json"
	"regexp"
)

// jsonObjectPattern matches the first flat JSON object embedded in a reply.
var jsonObjectPattern = regexp.MustCompile(`\{[^{}]*\}`)

// parseTradeInfo recovers a trade record from a model reply. It first
// attempts a strict parse of the whole reply, then falls back to the first
// embedded object-like substring. Returns nil when neither parses; missing
// fields are filled with the NotSpecified placeholder.
func parseTradeInfo(text string) *TradeInfo {
	if info := tryUnmarshal(text); info != nil {
		return info
	}
	if match := jsonObjectPattern.FindString(text); match != "" {
		if info := tryUnmarshal(match); info != nil {
			return info
		}
	}
	return nil
}

func tryUnmarshal(s string) *TradeInfo {
	var payload struct {
		Asset    string `json:"asset"`
		Scenario string `json:"scenario"`
		Date     string `json:"date"`
	}
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return nil
	}
	return &TradeInfo{
		Asset:    orNotSpecified(payload.Asset),
		Scenario: orNotSpecified(payload.Scenario),
		Date:     orNotSpecified(payload.Date),
	}
}

func orNotSpecified(value string) string {
	if value == "" {
		return NotSpecified
	}
	return value
}
