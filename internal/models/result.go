package models

// UpdateResult reports the outcome of an ownership-scoped update.
// Matched 0 means the record does not exist under the requesting owner;
// Matched 1 with Modified 0 means the record exists but nothing changed.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matched_count"`
	ModifiedCount int64 `json:"modified_count"`
}

// DeleteResult reports the outcome of an ownership-scoped delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deleted_count"`
}

// TagPage is the envelope for paginated tag reads.
type TagPage struct {
	Total int64  `json:"total"`
	Items []*Tag `json:"items"`
}

// SpeakAdminPage is the envelope for the unredacted admin feed.
type SpeakAdminPage struct {
	Total int64         `json:"total"`
	Items []*SpeakEntry `json:"items"`
}

// SpeakPage is the public speak feed envelope. ViewerID echoes the
// authenticated viewer (nil when anonymous) so clients can tell which
// redaction tier was applied.
type SpeakPage struct {
	Total    int64         `json:"total"`
	Items    []*SpeakEntry `json:"items"`
	ViewerID *uint         `json:"viewer_id"`
}
