package state

// NoticeKind classifies a user-facing notification.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is the event the reconciliation logic emits instead of touching the
// presentation directly; the view layer decides how and for how long to show
// it.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func InfoNotice(message string) Notice {
	return Notice{Kind: NoticeInfo, Message: message}
}

func SuccessNotice(message string) Notice {
	return Notice{Kind: NoticeSuccess, Message: message}
}

func ErrorNotice(message string) Notice {
	return Notice{Kind: NoticeError, Message: message}
}
