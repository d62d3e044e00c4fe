package domain

type EventType string

const (
	EventItemCreated EventType = "item.created"
	EventItemUpdated EventType = "item.updated"
	EventItemDeleted EventType = "item.deleted"
	EventTagCreated  EventType = "tag.created"
	EventTagUpdated  EventType = "tag.updated"
	EventTagDeleted  EventType = "tag.deleted"
)

// Event is published after a mutation has been committed.
type Event struct {
	Type EventType `json:"type"`
	Item *Item     `json:"item,omitempty"`
	Tag  *Tag      `json:"tag,omitempty"`
	ID   int64     `json:"id,omitempty"`
}
