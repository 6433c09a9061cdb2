package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrInvalidCategory     = fmt.Errorf("invalid sentiment category")
	ErrOutOfOrderTimestamp = fmt.Errorf("timestamp older than open window")
	ErrEmptyKeywords       = fmt.Errorf("no keywords have been configured")
	ErrEmptyText           = fmt.Errorf("empty text")
	ErrTransportClosed     = fmt.Errorf("transport closed")
)
