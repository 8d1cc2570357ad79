package event

// 事件主题
const (
	TopicInteractions  = "interactions"
	TopicNotifications = "notifications"
)

// 消费组名
const (
	InteractionGroup  = "interaction-group"
	NotificationGroup = "notification-group"
)

// InteractionEvent 行为事件,尽力而为的分析信号,允许丢弃
type InteractionEvent struct {
	UserID       int64   `json:"user_id"`
	ResourceType string  `json:"resource_type"`
	ResourceID   int64   `json:"resource_id"`
	Action       string  `json:"action"`
	Value        float64 `json:"value"`
}

// NotificationEvent 通知事件,面向用户,不允许静默丢失
type NotificationEvent struct {
	SenderID    int64  `json:"sender_id"`
	ReceiverID  int64  `json:"receiver_id"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	ReferenceID int64  `json:"reference_id"`
}
