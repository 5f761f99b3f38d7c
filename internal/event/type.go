package event

const PushNotiQueue string = "push_noti_events"

// NotificationEventPushModel is the payload the push gateway consumes. It is
// shared wire format with the notification consumer, so field names must not
// change without coordinating both sides.
type NotificationEventPushModel struct {
	LstUserIds []string          `json:"lst_user_ids"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Data       map[string]string `json:"data"`
}

// ActivityEventType tags what happened to an activity record.
type ActivityEventType string

const (
	ActivityOverdue   ActivityEventType = "activity_overdue"
	ActivityCompleted ActivityEventType = "activity_completed"
)
