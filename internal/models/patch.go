package models

// Patch types carry the optional fields of a partial update. A nil field
// is left untouched.

// SpeakPatch is a partial update for a speak entry.
type SpeakPatch struct {
	Title       *string     `json:"title"`
	Content     *string     `json:"content"`
	Visibility  *Visibility `json:"visibility"`
	TagID       *uint       `json:"tag_id"`
	Commentable *bool       `json:"commentable"`
}

// Empty reports whether the patch carries no fields.
func (p SpeakPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Visibility == nil &&
		p.TagID == nil && p.Commentable == nil
}

// TokenPatch is a partial update for an API token.
type TokenPatch struct {
	Title *string `json:"title"`
	Value *string `json:"value"`
}

// Empty reports whether the patch carries no fields.
func (p TokenPatch) Empty() bool {
	return p.Title == nil && p.Value == nil
}

// TagPatch is a partial update for a tag.
type TagPatch struct {
	Name        *string `json:"name"`
	BgColor     *string `json:"bg_color"`
	OrderNo     *int    `json:"order_no"`
	Description *string `json:"description"`
}

// Empty reports whether the patch carries no fields.
func (p TagPatch) Empty() bool {
	return p.Name == nil && p.BgColor == nil && p.OrderNo == nil && p.Description == nil
}
