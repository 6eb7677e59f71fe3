package sources

import (
	"context"
	"strings"

	"github.com/runger/omnibar/internal/query"
)

const settingIcon = "⚙"

// SettingsPage is one entry in the static settings index.
type SettingsPage struct {
	Name     string
	URL      string
	Keywords []string
}

// DefaultSettingsIndex is the hand-maintained list of browser settings
// pages. An entry matches when the query appears in its name or any
// keyword.
func DefaultSettingsIndex() []SettingsPage {
	return []SettingsPage{
		{Name: "Settings", URL: "chrome://settings/", Keywords: []string{"options", "preferences"}},
		{Name: "Appearance", URL: "chrome://settings/appearance", Keywords: []string{"theme", "font", "zoom"}},
		{Name: "Search engine", URL: "chrome://settings/search", Keywords: []string{"default search", "engine"}},
		{Name: "Privacy and security", URL: "chrome://settings/privacy", Keywords: []string{"cookies", "tracking", "security"}},
		{Name: "Clear browsing data", URL: "chrome://settings/clearBrowserData", Keywords: []string{"clear", "cache", "cookies", "history"}},
		{Name: "Passwords", URL: "chrome://settings/passwords", Keywords: []string{"credentials", "login", "autofill"}},
		{Name: "Payment methods", URL: "chrome://settings/payments", Keywords: []string{"cards", "autofill"}},
		{Name: "Addresses", URL: "chrome://settings/addresses", Keywords: []string{"autofill", "address"}},
		{Name: "Site settings", URL: "chrome://settings/content", Keywords: []string{"permissions", "camera", "microphone", "notifications", "javascript"}},
		{Name: "Downloads location", URL: "chrome://settings/downloads", Keywords: []string{"downloads", "folder"}},
		{Name: "Languages", URL: "chrome://settings/languages", Keywords: []string{"language", "spell check", "translate"}},
		{Name: "Accessibility", URL: "chrome://settings/accessibility", Keywords: []string{"captions", "screen reader"}},
		{Name: "System", URL: "chrome://settings/system", Keywords: []string{"proxy", "hardware acceleration"}},
		{Name: "Reset settings", URL: "chrome://settings/reset", Keywords: []string{"restore", "defaults", "cleanup"}},
		{Name: "About", URL: "chrome://settings/help", Keywords: []string{"version", "update"}},
		{Name: "Extensions", URL: "chrome://extensions/", Keywords: []string{"addons", "plugins"}},
		{Name: "History", URL: "chrome://history/", Keywords: []string{"visited", "browsing history"}},
		{Name: "Bookmarks", URL: "chrome://bookmarks/", Keywords: []string{"favorites", "bookmark manager"}},
		{Name: "Downloads", URL: "chrome://downloads/", Keywords: []string{"files", "downloaded"}},
		{Name: "Flags", URL: "chrome://flags/", Keywords: []string{"experiments", "experimental"}},
	}
}

// Settings adapts the static settings-page index. It has no backing
// collaborator and therefore cannot fail.
type Settings struct {
	pages []SettingsPage
}

// NewSettings creates the settings adapter. A nil pages slice uses the
// built-in index.
func NewSettings(pages []SettingsPage) *Settings {
	if pages == nil {
		pages = DefaultSettingsIndex()
	}
	return &Settings{pages: pages}
}

// Category implements query.Source.
func (s *Settings) Category() query.Category {
	return query.CategorySettings
}

// Search implements query.Source.
func (s *Settings) Search(_ context.Context, q string) ([]query.Item, error) {
	var items []query.Item
	for _, page := range s.pages {
		if !s.pageMatches(page, q) {
			continue
		}
		items = append(items, query.Item{
			ID:          "setting-" + slug(page.Name),
			Type:        query.TypeSetting,
			Title:       page.Name,
			Description: page.URL,
			Icon:        settingIcon,
			URL:         page.URL,
			Metadata: query.Metadata{
				Action: query.VerbOpenURL,
				URL:    page.URL,
			},
		})
	}
	return items, nil
}

func (s *Settings) pageMatches(page SettingsPage, q string) bool {
	if strings.Contains(strings.ToLower(page.Name), q) {
		return true
	}
	for _, kw := range page.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
