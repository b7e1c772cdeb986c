package request

// MessageRequest is an inbound chat message posted by the chat bridge
type MessageRequest struct {
	Sender      string `json:"sender"`
	Participant string `json:"participant,omitempty"`
	FromMe      bool   `json:"from_me,omitempty"`
	PushName    string `json:"push_name,omitempty"`
	Text        string `json:"text"`
}
