package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clanchief-backend/internal/models"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"historical", ModeHistorical, false},
		{"wisdom", ModeWisdom, false},
		{"Historical", "", true},
		{" wisdom", "", true},
		{"bard", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, "Unsupported mode", verr.Message)
			assert.Equal(t, "mode must be one of: historical, wisdom", verr.Details)
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	assert := assert.New(t)

	assert.True(strings.HasPrefix(ModeHistorical.SystemPrompt(), "You are the Fraser Clan Historian"))
	assert.Contains(ModeHistorical.SystemPrompt(), "Battle of the Shirts")
	assert.True(strings.HasPrefix(ModeWisdom.SystemPrompt(), "You are the Fraser Clan Chief"))
	assert.Contains(ModeWisdom.SystemPrompt(), "'Je suis prest' - I am ready")

	for _, m := range Modes() {
		assert.NotEmpty(m.SystemPrompt(), "mode %s", m)
	}

	assert.Panics(func() { Mode("bard").SystemPrompt() })
}

func TestBuildMessages_NoHistory(t *testing.T) {
	for _, history := range [][]models.HistoryTurn{nil, {}} {
		got := BuildMessages(ModeHistorical, history, "Who won at Culloden?")

		require.Len(t, got, 2)
		assert.Equal(t, models.Message{Role: "system", Content: ModeHistorical.SystemPrompt()}, got[0])
		assert.Equal(t, models.Message{Role: "user", Content: "Who won at Culloden?"}, got[1])
	}
}

func TestBuildMessages_HistoryOrderAndRoles(t *testing.T) {
	history := []models.HistoryTurn{
		{Sender: "user", Message: "hi"},
		{Sender: "bot", Message: "hello"},
		{Sender: "User", Message: "  spaced  "},
		{Sender: "", Message: ""},
	}

	got := BuildMessages(ModeWisdom, history, "What would a chief do?")

	require.Len(t, got, 6)
	assert.Equal(t, "system", got[0].Role)
	assert.Equal(t, ModeWisdom.SystemPrompt(), got[0].Content)
	assert.Equal(t, []models.Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "assistant", Content: "  spaced  "},
		{Role: "assistant", Content: ""},
	}, got[1:5])
	assert.Equal(t, models.Message{Role: "user", Content: "What would a chief do?"}, got[5])
}
