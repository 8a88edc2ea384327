package sessions

import "github.com/Nitingarg01/Major-project-sub001/internal/models"

type EventType string

const (
	EventSessionStarted  EventType = "session_started"
	EventRoundSwitched   EventType = "round_switched"
	EventRoundCompleted  EventType = "round_completed"
	EventAlertRecorded   EventType = "alert_recorded"
	EventSessionFinished EventType = "session_finished"

	// EventSnapshot is only sent by the stream endpoint, as its first frame.
	EventSnapshot EventType = "snapshot"
)

// subscriberBuffer bounds how far a subscriber may fall behind before
// frames are dropped.
const subscriberBuffer = 16

type Event struct {
	Type    EventType           `json:"type"`
	Session models.Session      `json:"session"`
	Result  *models.RoundResult `json:"result,omitempty"`
	Alert   *models.Alert       `json:"alert,omitempty"`
	Report  *models.FinalReport `json:"report,omitempty"`
}

func (e *entry) subscribe() (<-chan Event, func()) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan Event, subscriberBuffer)
	e.subs[id] = ch

	cancel := func() {
		e.subsMu.Lock()
		defer e.subsMu.Unlock()
		if c, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// publish never blocks: a full subscriber misses the event.
func (e *entry) publish(ev Event) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (e *entry) subscriberCount() int {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	return len(e.subs)
}
