package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/sharplint/pkg/config"
)

func TestRuleFormat_Label(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.RuleFormat
		id     string
		name   string
		want   string
	}{
		{config.RuleFormatName, "SL1002", "remove-braces", "remove-braces"},
		{config.RuleFormatID, "SL1002", "remove-braces", "SL1002"},
		{config.RuleFormatCombined, "SL1002", "remove-braces", "SL1002/remove-braces"},
		{config.RuleFormatCombined, "SL1002", "", "SL1002"},
		{config.RuleFormatName, "SL1002", "", "SL1002"},
		{"", "SL1005", "remove-empty-statement", "remove-empty-statement"},
		{"bogus", "SL1005", "remove-empty-statement", "remove-empty-statement"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.format.Label(tt.id, tt.name))
			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, tt.id, tt.name))
		})
	}
}

func TestFormats_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range config.OutputFormats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("xml").IsValid())
	assert.False(t, config.OutputFormat("").IsValid())

	for _, f := range config.RuleFormats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.RuleFormat("short").IsValid())
}

func TestNewConfig_DefaultRuleFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.RuleFormatName, config.NewConfig().RuleFormat)
}
