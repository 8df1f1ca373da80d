package services

import (
	"strings"

	"clanchief-backend/internal/models"
)

// Mode selects the persona the chief answers in.
type Mode string

const (
	ModeHistorical Mode = "historical"
	ModeWisdom     Mode = "wisdom"
)

const historicalPrompt = `You are the Fraser Clan Historian with deep knowledge of Fraser clan history from 1160 onwards. You know about battles, alliances, genealogy, and significant events. Respond as an authoritative clan historian would, with specific details about Fraser heritage, battles like Culloden and the Battle of the Shirts, clan strongholds, and historical figures. Always speak with reverence for Fraser traditions and honor. Keep responses engaging but historically grounded.`

const wisdomPrompt = `You are the Fraser Clan Chief offering Highland wisdom for modern life. Draw from centuries of clan values: courage ('Je suis prest' - I am ready), loyalty, strategic thinking, and honor. Help users apply Fraser principles to contemporary challenges in leadership, personal decisions, family matters, and life obstacles. Speak with the wisdom of Highland chiefs but make it practical for today's world. Always emphasize Fraser values of readiness, courage, and protecting those you lead.`

// Modes returns every supported mode in a stable order.
func Modes() []Mode {
	return []Mode{ModeHistorical, ModeWisdom}
}

// ParseMode matches s exactly against the supported modes.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHistorical, ModeWisdom:
		return Mode(s), nil
	}

	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return "", &ValidationError{
		Message: "Unsupported mode",
		Details: "mode must be one of: " + strings.Join(names, ", "),
	}
}

// SystemPrompt returns the fixed instruction for the mode. It panics on a
// value that did not come from ParseMode.
func (m Mode) SystemPrompt() string {
	switch m {
	case ModeHistorical:
		return historicalPrompt
	case ModeWisdom:
		return wisdomPrompt
	}
	panic("services: no system prompt for mode " + string(m))
}

// BuildMessages assembles the completion input: the mode's system prompt,
// the caller's history in order, then the new message.
func BuildMessages(mode Mode, history []models.HistoryTurn, message string) []models.Message {
	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: mode.SystemPrompt()})

	for _, turn := range history {
		role := models.RoleAssistant
		if turn.Sender == "user" {
			role = models.RoleUser
		}
		messages = append(messages, models.Message{Role: role, Content: turn.Message})
	}

	return append(messages, models.Message{Role: models.RoleUser, Content: message})
}
