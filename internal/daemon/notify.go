package daemon

import (
	"fmt"
	"log"

	"github.com/gen2brain/beeep"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// desktopNotifier surfaces engine events as OS notifications. Failures
// are logged and dropped; a missing notification daemon must never
// break tracking.
type desktopNotifier struct{}

func (desktopNotifier) LevelUp(level int) {
	msg := fmt.Sprintf("You reached level %d. Keep thinking first!", level)
	if err := beeep.Notify("ThinkFirst", msg, ""); err != nil {
		log.Printf("[daemon] desktop notification: %v", err)
	}
}

func (desktopNotifier) InterventionRequired(prompt string, a domain.Analysis) {
	msg := a.Reason
	if msg == "" {
		msg = "Take a moment to think this through before asking."
	}
	if err := beeep.Alert("ThinkFirst", msg, ""); err != nil {
		log.Printf("[daemon] desktop notification: %v", err)
	}
}
