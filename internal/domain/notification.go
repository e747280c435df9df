package domain

// Notification messages shown on export controls
const (
	MsgCopied            = "Copied to clipboard!"
	MsgCopyFailed        = "Copy failed. Please select and copy manually."
	MsgNoQueryToCopy     = "No query to copy"
	MsgNoQueryToDownload = "No query to download"
	MsgDownloaded        = "✅ Downloaded!"
	MsgDownloadFailed    = "Download failed: "
)

// Notification is the transient outcome of an export action.
// It is consumed by the feedback display and then discarded.
type Notification struct {
	Succeeded bool
	IsError   bool
	Message   string
}

// Success returns an affirmative notification
func Success(message string) Notification {
	return Notification{Succeeded: true, Message: message}
}

// Failure returns a negative notification, rendered as an error
func Failure(message string) Notification {
	return Notification{IsError: true, Message: message}
}
