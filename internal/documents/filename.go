package documents

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const fallbackSlug = "cliente"

// Filename names a contract download: contrato-<business>-<client>.pdf.
func Filename(businessSlug, clientName string) string {
	business := Slugify(businessSlug)
	if business == "" {
		business = "studio"
	}
	client := Slugify(clientName)
	if client == "" {
		client = fallbackSlug
	}
	return "contrato-" + business + "-" + client + ".pdf"
}

// Slugify lowercases s, joins whitespace runs with a single hyphen and removes
// characters that are unsafe in a download name. Accents are kept in NFC form.
func Slugify(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\'', ':', '*', '?', '<', '>', '|':
			return -1
		}
		return r
	}, norm.NFC.String(s))
	return strings.Join(strings.Fields(strings.ToLower(cleaned)), "-")
}
