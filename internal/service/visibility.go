package service

import "kkapi/internal/models"

const (
	loginRequiredPlaceholder = "Log in to view this entry"
	authorOnlyPlaceholder    = "This entry is visible to its author only"
)

// redactSpeak applies the visibility policy of a single entry for a viewer.
// viewerID is nil for anonymous readers. The entry is modified in place:
// restricted entries keep their metadata but have the title cleared and the
// content replaced by a placeholder, so lists stay stable for every viewer.
func redactSpeak(entry *models.SpeakEntry, viewerID *uint) {
	switch entry.Visibility {
	case models.VisibilityPublic:
		return
	case models.VisibilityLoginRequired:
		if viewerID != nil {
			return
		}
		entry.Title = ""
		entry.Content = loginRequiredPlaceholder
	case models.VisibilityAuthorOnly:
		if viewerID != nil && *viewerID == entry.AuthorID {
			return
		}
		entry.Title = ""
		entry.Content = authorOnlyPlaceholder
	}
}

func redactSpeakList(entries []*models.SpeakEntry, viewerID *uint) {
	for _, e := range entries {
		redactSpeak(e, viewerID)
	}
}
