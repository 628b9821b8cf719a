package response

import "github.com/kampusapp/kampus-sync/domain"

type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	ActorID   string `json:"actor_id,omitempty"`
	ActorName string `json:"actor_name,omitempty"`
	TargetID  string `json:"target_id,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	CreatedAt string `json:"created_at"`
}

// NewNotificationFromDomain: Domain -> Response
func NewNotificationFromDomain(n *domain.Notification) Notification {
	return Notification{
		ID:        n.ID,
		Type:      string(n.Type),
		Read:      n.Read,
		ActorID:   n.Payload.ActorID,
		ActorName: n.Payload.ActorName,
		TargetID:  n.Payload.TargetID,
		Kind:      string(n.Payload.TargetKind),
		Excerpt:   n.Payload.Excerpt,
		CreatedAt: n.CreatedAt.Format(DateTimeFormat),
	}
}
