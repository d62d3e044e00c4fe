package domain

import "time"

// Item is a single shopping-list entry.
type Item struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      []Tag     `json:"tags"`
}

// Tag is a named label that can be attached to any number of items.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemFilter narrows an item listing.
type ItemFilter struct {
	TagID *int64
	Query string
}

// ItemPatch is a partial item update. Absent fields are left untouched.
// A present TagIDs, even empty or null, replaces the whole tag set.
type ItemPatch struct {
	Content Optional[string]  `json:"content"`
	Checked Optional[bool]    `json:"checked"`
	TagIDs  Optional[[]int64] `json:"tagIds"`
}

// Empty reports whether the patch carries no fields at all.
func (p ItemPatch) Empty() bool {
	return !p.Content.Set && !p.Checked.Set && !p.TagIDs.Set
}

// TagPatch is a partial tag update. A null color clears it.
type TagPatch struct {
	Name  Optional[string] `json:"name"`
	Color Optional[string] `json:"color"`
}

func (p TagPatch) Empty() bool {
	return !p.Name.Set && !p.Color.Set
}
