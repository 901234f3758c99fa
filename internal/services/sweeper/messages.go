package sweeper

import (
	"fmt"
	"math"
	"time"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/ledger"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/workorder"
)

const (
	titleEscalationAdmin   = "🚨 ESCALARE ADMIN: Work Order Critic"
	titleEscalationManager = "⚠️ ESCALARE MANAGER: Work Order Întârziat"
	titleFirstReminder     = "⏰ Reminder: Work Order în Așteptare"
)

// messageFor renders the notification for one decision. The texts match
// what the web app's service worker displays, so they stay byte-stable.
func messageFor(level ledger.Level, w *workorder.WorkOrder, now time.Time) push.Message {
	age := int(math.Round(w.AgeHours(now)))

	var title, body string
	switch level {
	case ledger.LevelEscalationAdmin:
		title = titleEscalationAdmin
		body = fmt.Sprintf("URGENT: %s - %s (%dh nerezonvat)", w.Title, w.DisplayName, age)
	case ledger.LevelEscalationManager:
		title = titleEscalationManager
		body = fmt.Sprintf("Atenție: %s - %s (%dh nerezonvat)", w.Title, w.DisplayName, age)
	default:
		title = titleFirstReminder
		body = fmt.Sprintf("%s - %s (%dh în așteptare)", w.Title, w.DisplayName, age)
	}

	return push.Message{
		Title:       title,
		Body:        body,
		URL:         "/work-orders/" + w.ID.String(),
		Tag:         fmt.Sprintf("wo-reminder-%s-%s", w.ID, level),
		WorkOrderID: w.ID,
	}
}
