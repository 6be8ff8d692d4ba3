package model

// VisibleNotification is the OS-rendered part of a push message.
type VisibleNotification struct {
	Title string
	Body  string
}

// AndroidConfig holds Android specific delivery options.
type AndroidConfig struct {
	Priority  string
	ChannelID string
	Sound     string
}

// APNSConfig holds the aps dictionary fields sent to iOS devices.
type APNSConfig struct {
	Sound string
	Badge int
}

// DeliveryPayload is the provider-neutral message handed to a Messenger.
// Data values are always strings.
type DeliveryPayload struct {
	Token        string
	Kind         Kind
	Data         map[string]string
	Notification *VisibleNotification
	Android      *AndroidConfig
	APNS         *APNSConfig
}

// DataOnly reports whether the payload lacks a visible notification section.
func (p DeliveryPayload) DataOnly() bool {
	return p.Notification == nil
}

// DeliveryResult is the outcome of one send. Exactly one of MessageID and
// Error is meaningful, depending on Success.
type DeliveryResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Delivered builds a successful result.
func Delivered(messageID string) DeliveryResult {
	return DeliveryResult{Success: true, MessageID: messageID}
}

// Failed builds a failed result.
func Failed(reason string) DeliveryResult {
	return DeliveryResult{Success: false, Error: reason}
}
