// Package email renders reviewer notifications. Senders live in the ses and
// noop subpackages.
package email

import (
	"fmt"
	"html"
	"strings"

	"intakeflow/internal/domain"
)

// reviewTypeOrder fixes the order of digest lines.
var reviewTypeOrder = []domain.ReviewType{
	domain.ReviewTypeDuplicateEmail,
	domain.ReviewTypeDuplicatePhone,
	domain.ReviewTypeDuplicateBoth,
	domain.ReviewTypeInvalidPhone,
	domain.ReviewTypeModified,
}

// Digest is a rendered review-queue notification.
type Digest struct {
	Subject string
	HTML    string
	Text    string
}

// RenderDigest builds the subject and both bodies for a review digest. Review
// types with a zero count are omitted.
func RenderDigest(d domain.ReviewDigest, frontendURL string) Digest {
	subject := fmt.Sprintf("%d fiche(s) à vérifier", d.Total)
	reviewURL := strings.TrimRight(frontendURL, "/") + "/reviews"

	var text strings.Builder
	fmt.Fprintf(&text, "Bonjour,\n\nL'import de %s a placé %d fiche(s) en vérification :\n", d.SourceFile, d.Total)

	var items strings.Builder
	for _, rt := range reviewTypeOrder {
		n := d.Counts[rt]
		if n == 0 {
			continue
		}
		fmt.Fprintf(&text, "- %s : %d\n", rt, n)
		fmt.Fprintf(&items, "    <li>%s : %d</li>\n", html.EscapeString(string(rt)), n)
	}
	fmt.Fprintf(&text, "\nFile de vérification : %s\n", reviewURL)

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Fiches à vérifier</h2>
  <p>L'import de <strong>%s</strong> a placé %d fiche(s) en vérification :</p>
  <ul>
%s  </ul>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Ouvrir la file</a>
  </p>
</body>
</html>`, html.EscapeString(d.SourceFile), d.Total, items.String(), reviewURL)

	return Digest{Subject: subject, HTML: body, Text: text.String()}
}
