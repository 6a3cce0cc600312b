package entity

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message for the cashier.
type Notice struct {
	Level   NoticeLevel
	Message string
}

func Success(msg string) Notice { return Notice{Level: NoticeSuccess, Message: msg} }
func Warning(msg string) Notice { return Notice{Level: NoticeWarning, Message: msg} }
func Failure(msg string) Notice { return Notice{Level: NoticeError, Message: msg} }
