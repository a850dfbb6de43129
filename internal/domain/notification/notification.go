package notification

import (
	"fmt"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSuccess, KindInfo, KindError:
		return k, nil
	}
	return "", fmt.Errorf("unknown notification kind %q", s)
}

// Notification is a transient message for the view layer. Seq increases with
// every published notification so a stale auto-clear can be ignored.
type Notification struct {
	Message   string    `json:"message"`
	Kind      Kind      `json:"type"`
	Seq       uint64    `json:"seq"`
	CreatedAt time.Time `json:"createdAt"`
}
