package common

// DateLayout is the wire format of a publication date (ISO-8601 calendar date).
const DateLayout = "2006-01-02"

// Messages shared by the socket and RPC adapters.
const (
	MsgBookCreated = "Book created successfully"
	MsgBookUpdated = "Book updated successfully"
	MsgBookDeleted = "Book deleted successfully"
)
