// Package chathub owns the set of live subscribers and fans every stored
// message event out to all of them. The subscriber set is mutated and
// iterated only inside the Run loop, so connect, disconnect and broadcast
// never interleave.
package chathub

import (
	"log"

	"omnichat/backend/internal/models"
)

// ManagerService is the hub. All access to Clients goes through the
// Register/Unregister/Broadcast channels serviced by Run.
type ManagerService struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.RoomEvent
}

// NewManagerService creates a hub with an empty subscriber set.
func NewManagerService() *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.RoomEvent),
	}
}

// Run is the hub's single dispatch loop. It must run in its own goroutine.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.register(client)

		case client := <-m.UnregisterCh:
			m.unregister(client)

		case event := <-m.BroadcastCh:
			m.broadcast(event)
		}
	}
}

func (m *ManagerService) register(client Client) {
	viewerID := client.GetViewerID()
	if existing, ok := m.Clients[viewerID]; ok && existing != client {
		// A stale connection under the same viewer id is replaced.
		existing.Close()
	}
	m.Clients[viewerID] = client
	log.Printf("INFO: Subscriber %s connected (%d total)", viewerID, len(m.Clients))
}

// unregister removes the client from the set. Unregistering twice, or a
// client that was never registered, is a no-op.
func (m *ManagerService) unregister(client Client) {
	viewerID := client.GetViewerID()
	current, ok := m.Clients[viewerID]
	if !ok || current != client {
		return
	}
	delete(m.Clients, viewerID)
	client.Close()
	log.Printf("INFO: Subscriber %s disconnected (%d total)", viewerID, len(m.Clients))
}

// broadcast delivers the event to every connected subscriber. A subscriber
// whose send buffer is full is dropped rather than allowed to stall the rest
// of the fan-out.
func (m *ManagerService) broadcast(event models.RoomEvent) {
	for viewerID, client := range m.Clients {
		select {
		case client.GetSendChannel() <- event:
		default:
			log.Printf("WARNING: Subscriber %s is not keeping up, dropping", viewerID)
			delete(m.Clients, viewerID)
			client.Close()
		}
	}
}
