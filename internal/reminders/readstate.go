package reminders

import "sync"

// ReadState tracks which derived reminders each driver has opened. It is
// in-memory only: reminders are recomputed every session, so persisting read
// flags would need a backing store the product does not have. Flags are keyed
// per driver so one driver's reads never leak into another's panel.
type ReadState struct {
	mu   sync.Mutex
	read map[uint]map[string]bool
}

func NewReadState() *ReadState {
	return &ReadState{read: make(map[uint]map[string]bool)}
}

// MarkRead flags a reminder as read for one driver until the process restarts.
func (s *ReadState) MarkRead(driverID uint, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.read[driverID] == nil {
		s.read[driverID] = make(map[string]bool)
	}
	s.read[driverID][id] = true
}

// Apply sets the read flag on each message from the driver's session state.
func (s *ReadState) Apply(driverID uint, messages []OverdueMessage) []OverdueMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags := s.read[driverID]
	for i := range messages {
		messages[i].Read = flags[messages[i].ID]
	}
	return messages
}
