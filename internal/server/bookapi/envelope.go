package bookapi

// Socket actions.
const (
	ActionCreate = "CREATE"
	ActionGet    = "GET"
	ActionGetAll = "GET_ALL"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionBook   = "BOOK"
	ActionError  = "ERROR"
)

// Envelope is the single-record reply of both socket adapters.
type Envelope struct {
	Action string `json:"action"`
	View
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListEnvelope carries a whole listing inline.
type ListEnvelope struct {
	Action  string     `json:"action"`
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Books   []Envelope `json:"books"`
	Count   int        `json:"count"`
}

func Failure(action, msg string) Envelope {
	return Envelope{Action: action, Message: msg}
}
