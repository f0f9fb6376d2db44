package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToForm(formID string, msgType string, payload interface{})
	BroadcastToUser(userID string, msgType string, payload interface{})
	DisconnectForm(formID string)
}
