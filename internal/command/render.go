package command

import (
	"fmt"
	"strings"

	"growstat-backend/internal/services"
)

const (
	helpText = "Hi! 🎀\n\n" +
		"Available commands:\n" +
		"/grow (/sisi) - grow your size, once per hour\n" +
		"/my_status (/mysize) - check your size\n" +
		"/leaderboard (/stats) - see the top participants"

	adminHelpText = "\n\nAdmin commands:\n" +
		"/admin_give (/givesize) <user_id> <amount>\n" +
		"/admin_set (/setsize) <user_id> <value>\n" +
		"/admin_delete (/delsize) <user_id>"

	forbiddenText   = "❌ You are not allowed to use this command."
	badNumberText   = "❌ Invalid format. The size must be a number."
	noCallerText    = "❌ Could not tell who sent this command."
	unavailableText = "⚠️ Storage is unavailable right now, please try again later."
	emptyBoardText  = "📊 The leaderboard is empty. Nobody has used /grow yet."
)

var medals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

func usageText(name string) string {
	switch name {
	case CmdAdminGive:
		return "Usage: /admin_give <user_id> <amount>\nExample: /admin_give 123456789 100.5"
	case CmdAdminSet:
		return "Usage: /admin_set <user_id> <value>\nExample: /admin_set 123456789 100.5"
	case CmdAdminDelete:
		return "Usage: /admin_delete <user_id>\nExample: /admin_delete 123456789"
	}
	return ""
}

func renderGrowth(res *services.GrowthResult) string {
	if !res.Allowed {
		return fmt.Sprintf("%s, try again in %d min %d sec. Current size: %.2f cm.",
			res.DisplayName, res.RemainingMinutes, res.RemainingSeconds, res.Size)
	}
	return fmt.Sprintf("%s, you grew by %.2f cm! Current size: %.2f cm.",
		res.DisplayName, res.Growth, res.Size)
}

func renderStatus(res *services.StatusResult) string {
	if !res.Exists {
		return fmt.Sprintf("%s, you have not used /grow yet.\nCurrent size: 0.00 cm", res.DisplayName)
	}
	text := fmt.Sprintf("%s, your current size is %.2f cm", res.DisplayName, res.Size)
	if res.NextGrowthIn > 0 {
		text += fmt.Sprintf("\nNext growth in %d min %d sec", res.RemainingMinutes, res.RemainingSeconds)
	}
	return text
}

func renderLeaderboard(board *services.Leaderboard) string {
	var b strings.Builder
	b.WriteString("📊 Top sizes:\n\n")
	for _, e := range board.Entries {
		if medal, ok := medals[e.Medal]; ok {
			b.WriteString(medal)
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d. %s: %.2f cm\n", e.Rank, e.DisplayName, e.Size)
	}
	if board.Overflow > 0 {
		fmt.Fprintf(&b, "\n...and %d more participants", board.Overflow)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderAdmin(name string, res *services.AdminResult, amount float64) string {
	switch name {
	case CmdAdminGive:
		return fmt.Sprintf("✅ Gave %.2f cm to user %s\nNew size: %.2f cm", amount, res.TargetID, res.Size)
	case CmdAdminSet:
		return fmt.Sprintf("✅ Set size %.2f cm for user %s", res.Size, res.TargetID)
	default:
		return fmt.Sprintf("✅ Removed user %s (%s, %.2f cm)", res.TargetID, res.DisplayName, res.PreviousSize)
	}
}
