package groupware

import (
	"fmt"
	"strings"
)

// buildVCard serializes a contact into a vCard 3.0 document suitable for
// an addressbook PUT.
func buildVCard(uid string, input ContactInput) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:3.0\r\n")
	fmt.Fprintf(&b, "UID:%s\r\n", uid)
	fmt.Fprintf(&b, "N:%s;%s;;;\r\n", escapeVCardText(input.LastName), escapeVCardText(input.FirstName))
	fmt.Fprintf(&b, "FN:%s\r\n", escapeVCardText(strings.TrimSpace(input.FirstName+" "+input.LastName)))

	if input.Email != "" {
		fmt.Fprintf(&b, "EMAIL;TYPE=INTERNET:%s\r\n", escapeVCardText(input.Email))
	}
	if input.Phone != "" {
		fmt.Fprintf(&b, "TEL;TYPE=WORK:%s\r\n", escapeVCardText(input.Phone))
	}
	if input.Company != "" {
		fmt.Fprintf(&b, "ORG:%s\r\n", escapeVCardText(input.Company))
	}
	if input.Title != "" {
		fmt.Fprintf(&b, "TITLE:%s\r\n", escapeVCardText(input.Title))
	}
	if input.Notes != "" {
		fmt.Fprintf(&b, "NOTE:%s\r\n", escapeVCardText(input.Notes))
	}

	b.WriteString("END:VCARD\r\n")

	return b.String()
}

// escapeVCardText escapes text per RFC 2426: backslash, semicolon, comma
// and newline.
func escapeVCardText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}
