package store

import "investconnect/internal/models"

// NotificationState holds the list and a cached unread counter that always
// equals the number of unread items.
type NotificationState struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
	IsLoading     bool                  `json:"isLoading"`
	Error         string                `json:"error,omitempty"`
}

func NewNotificationState() NotificationState {
	return NotificationState{Notifications: []models.Notification{}}
}

func (n *NotificationState) BeginLoad() {
	n.IsLoading = true
	n.Error = ""
}

func (n *NotificationState) LoadSucceeded(list []models.Notification) {
	n.IsLoading = false
	n.Notifications = append([]models.Notification{}, list...)
	n.recount()
}

func (n *NotificationState) LoadFailed(reason string) {
	n.IsLoading = false
	n.Error = reason
}

func (n *NotificationState) AddOne(item models.Notification) {
	n.Notifications = append([]models.Notification{item}, n.Notifications...)
	if !item.IsRead {
		n.UnreadCount++
	}
}

func (n *NotificationState) MarkRead(id string) {
	for i := range n.Notifications {
		if n.Notifications[i].ID == id {
			if !n.Notifications[i].IsRead {
				n.Notifications[i].IsRead = true
				n.UnreadCount--
			}
			return
		}
	}
}

func (n *NotificationState) MarkAllRead() {
	for i := range n.Notifications {
		n.Notifications[i].IsRead = true
	}
	n.UnreadCount = 0
}

func (n *NotificationState) Clear() {
	n.Notifications = []models.Notification{}
	n.UnreadCount = 0
}

func (n *NotificationState) recount() {
	c := 0
	for _, item := range n.Notifications {
		if !item.IsRead {
			c++
		}
	}
	n.UnreadCount = c
}

func (n NotificationState) clone() NotificationState {
	n.Notifications = append([]models.Notification{}, n.Notifications...)
	return n
}
