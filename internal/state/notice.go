package state

import (
	"errors"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/console"
)

// Kind classifies a notice.
type Kind int

const (
	KindNone Kind = iota
	KindInfo
	KindSuccess
	KindValidation
	KindMalformed
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindValidation:
		return "validation"
	case KindMalformed:
		return "malformed"
	case KindRemote:
		return "remote"
	default:
		return ""
	}
}

// Notice is the single message a screen shows above its content.
type Notice struct {
	Kind Kind
	Text string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool { return n.Kind == KindNone || n.Text == "" }

// IsError reports whether the notice describes a failure.
func (n Notice) IsError() bool {
	return n.Kind == KindValidation || n.Kind == KindMalformed || n.Kind == KindRemote
}

// Info and Success build non-error notices.
func Info(text string) Notice { return Notice{Kind: KindInfo, Text: text} }

func Success(text string) Notice { return Notice{Kind: KindSuccess, Text: text} }

// Op names an operation for remote-failure messages.
type Op int

const (
	OpFetchRecords Op = iota
	OpDeleteRecord
	OpFetchSettings
	OpUpdateSettings
	OpFetchUsage
	OpFetchQueryLogs
	OpFetchAnalytics
)

// Operator-facing messages.
const (
	MsgInvalidJSON      = "Invalid JSON format. Please check your input."
	MsgSettingsFetched  = "Current settings fetched successfully!"
	MsgConfigUpdated    = "Configuration updated successfully!"
	MsgNoRecordsFound   = "No records found for this index."
	msgFetchFailed      = "Failed to fetch records. Please try again."
	msgDeleteFailed     = "Failed to delete record. Please try again."
	msgSettingsFailed   = "failed to fetch"
	msgUpdateFailed     = "Failed to update configuration. Please try again."
	msgUnexpectedFailed = "An unexpected error occurred. Please try again."
)

func (o Op) remoteMessage() string {
	switch o {
	case OpFetchRecords, OpFetchUsage, OpFetchQueryLogs, OpFetchAnalytics:
		return msgFetchFailed
	case OpDeleteRecord:
		return msgDeleteFailed
	case OpFetchSettings:
		return msgSettingsFailed
	case OpUpdateSettings:
		return msgUpdateFailed
	default:
		return msgUnexpectedFailed
	}
}

// Describe turns an action error into exactly one notice kind: validation,
// malformed input, or remote failure. A provider message carried by err
// replaces the generic remote text. A nil err yields an empty notice.
func Describe(op Op, err error) Notice {
	if err == nil {
		return Notice{}
	}
	var verr *console.ValidationError
	switch {
	case errors.As(err, &verr):
		return Notice{Kind: KindValidation, Text: verr.Message}
	case errors.Is(err, console.ErrMalformedInput):
		return Notice{Kind: KindMalformed, Text: MsgInvalidJSON}
	}
	if msg := algolia.ServerMessage(err); msg != "" {
		return Notice{Kind: KindRemote, Text: msg}
	}
	return Notice{Kind: KindRemote, Text: op.remoteMessage()}
}
