// Package actions builds the contact links shown on a card.
package actions

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jasu-us/business-card/internal/domain/entity"
)

type Kind string

const (
	Call     Kind = "call"
	Email    Kind = "email"
	Location Kind = "location"
	Website  Kind = "website"
	WhatsApp Kind = "whatsapp"
	WeChat   Kind = "wechat"
	LinkedIn Kind = "linkedin"
	Calendar Kind = "calendar"
)

// Action is a single contact button.
type Action struct {
	Kind  Kind
	Title string
	URL   string
	// External links open in a new tab.
	External bool
}

const mapsSearch = "https://www.google.com/maps/search/?api=1&query="

var (
	absoluteURL = regexp.MustCompile(`(?i)^https?://`)
	nonDigits   = regexp.MustCompile(`\D`)
)

func Phone(p entity.Person) string {
	if p.Phone == "" {
		return ""
	}
	return "tel:" + p.Phone
}

func Mail(p entity.Person) string {
	if p.Email == "" {
		return ""
	}
	return "mailto:" + p.Email
}

// Map passes absolute location URLs through and turns anything else into a
// maps search.
func Map(p entity.Person) string {
	loc := strings.TrimSpace(p.Location)
	if loc == "" {
		return ""
	}
	if absoluteURL.MatchString(loc) {
		return loc
	}
	return mapsSearch + url.QueryEscape(loc)
}

func WhatsAppChat(p entity.Person) string {
	number := nonDigits.ReplaceAllString(p.WhatsApp, "")
	if number == "" {
		return ""
	}
	text := "Hello " + p.Name + ", I’d like to get in touch with you."
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

func WeChatChat(p entity.Person) string {
	raw := strings.TrimSpace(p.WeChat)
	if raw == "" {
		return ""
	}
	if absoluteURL.MatchString(raw) || strings.HasPrefix(raw, "weixin://") {
		return raw
	}
	return "weixin://dl/chat?" + url.QueryEscape(raw)
}

// Schedule picks the explicit scheduling URL, then the calendar, then a
// cal.com page for the username. Scheme-less values get https://.
func Schedule(p entity.Person) string {
	raw := strings.TrimSpace(p.CalURL)
	if raw == "" {
		raw = strings.TrimSpace(p.Calendar)
	}
	if raw == "" {
		if user := strings.TrimPrefix(strings.TrimSpace(p.CalUsername), "@"); user != "" {
			raw = "https://cal.com/" + user
		}
	}
	if raw == "" {
		return ""
	}
	if absoluteURL.MatchString(raw) {
		return raw
	}
	return "https://" + raw
}

// For lists the actions available for p in display order. Actions whose
// source field is empty are left out.
func For(p entity.Person) []Action {
	candidates := []Action{
		{Kind: Call, Title: "Call", URL: Phone(p)},
		{Kind: Email, Title: "Send email", URL: Mail(p)},
		{Kind: Location, Title: "See location", URL: Map(p), External: true},
		{Kind: Website, Title: "Visit website", URL: strings.TrimSpace(p.Website), External: true},
		{Kind: WhatsApp, Title: "Send WhatsApp", URL: WhatsAppChat(p), External: true},
		{Kind: WeChat, Title: "WeChat", URL: WeChatChat(p), External: true},
		{Kind: LinkedIn, Title: "See LinkedIn", URL: strings.TrimSpace(p.LinkedIn), External: true},
		{Kind: Calendar, Title: "Schedule a meeting", URL: Schedule(p), External: true},
	}

	out := make([]Action, 0, len(candidates))
	for _, a := range candidates {
		if a.URL != "" {
			out = append(out, a)
		}
	}
	return out
}
