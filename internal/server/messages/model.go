package messages

// Message is one row of the shared chat log. Rows are immutable; the only
// mutation of the table is retention pruning of the oldest rows.
//
// The ReplyTo* columns are a snapshot of the replied-to message captured by
// the sender; the referenced row may already have been pruned.
type Message struct {
	ID              string
	UserID          string
	Username        string
	Avatar          string
	Text            string
	Timestamp       int64
	IsAI            bool
	UserColor       string
	ReplyToID       string
	ReplyToUsername string
	ReplyToText     string
}
