package ws

import "encoding/json"

// MessageType identifies a realtime message
type MessageType string

const (
	// MessageTypeInitialData carries today's bookings right after connect
	MessageTypeInitialData MessageType = "initial_data"
	// MessageTypeNewBooking announces a created booking
	MessageTypeNewBooking MessageType = "new_booking"
	// MessageTypeBookingUpdate announces a modified booking
	MessageTypeBookingUpdate MessageType = "booking_update"
	// MessageTypeBookingCancellation announces a cancelled booking
	MessageTypeBookingCancellation MessageType = "booking_cancellation"
	// MessageTypePong answers a client ping
	MessageTypePong MessageType = "pong"
)

// Message is the envelope for every server to client frame
type Message struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Encode marshals the message for the wire
func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// clientMessage is what clients send, currently only pings
type clientMessage struct {
	Type string `json:"type"`
}

// Close codes for handshake rejections
const (
	// CloseMissingToken is sent when the token query parameter is absent
	CloseMissingToken = 4001
	// CloseInvalidToken is sent when the token fails verification
	CloseInvalidToken = 4002
)
