// Package vcard renders Person records as vCard 2.1 text.
package vcard

import (
	"regexp"
	"strings"
	"time"

	"github.com/jasu-us/business-card/internal/domain/entity"
)

const (
	crlf      = "\r\n"
	revLayout = "20060102T150405Z"
	noteIntro = "Digital Business Card - "
)

var (
	nonDigits  = regexp.MustCompile(`\D`)
	whitespace = regexp.MustCompile(`\s+`)

	escaper = strings.NewReplacer(
		`\`, `\\`,
		"\n", `\n`,
		";", `\;`,
		",", `\,`,
		":", `\:`,
	)
)

// Escape backslash-escapes the characters reserved in vCard text values.
func Escape(v string) string {
	return escaper.Replace(v)
}

// FormatPhone normalizes a phone number to +<digits>. Ten digit numbers
// without a leading plus get the +1 country code.
func FormatPhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(phone), "+") {
		return "+" + digits
	}
	if len(digits) == 10 {
		return "+1" + digits
	}
	return "+" + digits
}

// SplitName splits a full name into the first word and the rest.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// FileName is the download name for the person's card.
func FileName(name string) string {
	slug := whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	if slug == "" {
		slug = "contact"
	}
	return slug + ".vcf"
}

type lines []string

func (l *lines) add(s string) { *l = append(*l, s) }

func (l *lines) addIf(cond bool, s string) {
	if cond {
		l.add(s)
	}
}

func (l lines) String() string {
	return strings.Join(l, crlf) + crlf
}

// Generate returns the full card: name, organization, title, phone, email,
// address, website, a note and the revision stamp. Empty fields are omitted.
func Generate(p entity.Person, now time.Time) string {
	full := strings.TrimSpace(p.Name)
	first, last := SplitName(full)
	phone := FormatPhone(p.Phone)

	var out lines
	out.add("BEGIN:VCARD")
	out.add("VERSION:2.1")
	out.add("N:" + Escape(last) + ";" + Escape(first) + ";;;")
	out.add("FN:" + Escape(full))
	out.addIf(p.Title != "", "ORG:"+Escape(p.Title))
	out.addIf(p.Title != "", "TITLE:"+Escape(p.Title))
	out.addIf(phone != "", "TEL;TYPE=CELL:"+phone)
	out.addIf(p.Email != "", "EMAIL;TYPE=WORK:"+Escape(p.Email))
	out.addIf(p.Address != "", "ADR;TYPE=WORK:;;"+Escape(p.Address)+";;;;")
	out.addIf(p.Website != "", "URL;TYPE=WORK:"+Escape(p.Website))
	out.add("NOTE:" + noteIntro + Escape(full))
	out.add("REV:" + now.UTC().Format(revLayout))
	out.add("END:VCARD")
	return out.String()
}

// Compact returns a minimal card with name, phone and email only, for
// readers that choke on the full field set.
func Compact(p entity.Person, now time.Time) string {
	full := strings.TrimSpace(p.Name)
	first, last := SplitName(full)
	phone := FormatPhone(p.Phone)

	var out lines
	out.add("BEGIN:VCARD")
	out.add("VERSION:2.1")
	out.add("N:" + Escape(last) + ";" + Escape(first) + ";;;")
	out.add("FN:" + Escape(full))
	out.addIf(phone != "", "TEL;CELL:"+phone)
	out.addIf(p.Email != "", "EMAIL;INTERNET:"+Escape(p.Email))
	out.add("REV:" + now.UTC().Format(revLayout))
	out.add("END:VCARD")
	return out.String()
}
