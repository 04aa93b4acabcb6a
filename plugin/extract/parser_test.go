package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTradeInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *TradeInfo
	}{
		{
			name: "strict JSON",
			text: `{"asset": "BTC/USDT", "scenario": "Breakout", "date": "03.10.2025"}`,
			want: &TradeInfo{Asset: "BTC/USDT", Scenario: "Breakout", Date: "03.10.2025"},
		},
		{
			name: "markdown fenced JSON",
			text: "```json\n{\"asset\": \"ETH/USDT\", \"scenario\": \"Retest\", \"date\": \"01.01.2025\"}\n```",
			want: &TradeInfo{Asset: "ETH/USDT", Scenario: "Retest", Date: "01.01.2025"},
		},
		{
			name: "JSON embedded in prose",
			text: `Here is the result: {"asset": "SOL/USDT", "scenario": "Pullback", "date": "15.06.2025"} hope it helps`,
			want: &TradeInfo{Asset: "SOL/USDT", Scenario: "Pullback", Date: "15.06.2025"},
		},
		{
			name: "missing fields filled with placeholder",
			text: `{"asset": "BTC/USDT"}`,
			want: &TradeInfo{Asset: "BTC/USDT", Scenario: NotSpecified, Date: NotSpecified},
		},
		{
			name: "empty object",
			text: `{}`,
			want: &TradeInfo{Asset: NotSpecified, Scenario: NotSpecified, Date: NotSpecified},
		},
		{
			name: "plain refusal text",
			text: "Sorry, I cannot find any trade details in that.",
			want: nil,
		},
		{
			name: "broken braces",
			text: "result { not json at all",
			want: nil,
		},
		{
			name: "empty string",
			text: "",
			want: nil,
		},
		{
			name: "JSON array is not a record",
			text: `["BTC/USDT", "Breakout"]`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTradeInfo(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Asset, got.Asset)
			assert.Equal(t, tt.want.Scenario, got.Scenario)
			assert.Equal(t, tt.want.Date, got.Date)
		})
	}
}
