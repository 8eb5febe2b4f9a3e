package groupware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVCard(t *testing.T) {
	doc := buildVCard("uid-1", ContactInput{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
		Phone:     "+49 30 123456",
		Company:   "Example GmbH",
		Title:     "Engineer",
		Notes:     "Met at FOSDEM",
	})

	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCARD\r\nVERSION:3.0\r\n"))
	assert.True(t, strings.HasSuffix(doc, "END:VCARD\r\n"))
	assert.Contains(t, doc, "UID:uid-1\r\n")
	assert.Contains(t, doc, "N:Smith;Jane;;;\r\n")
	assert.Contains(t, doc, "FN:Jane Smith\r\n")
	assert.Contains(t, doc, "EMAIL;TYPE=INTERNET:jane@example.com\r\n")
	assert.Contains(t, doc, "TEL;TYPE=WORK:+49 30 123456\r\n")
	assert.Contains(t, doc, "ORG:Example GmbH\r\n")
	assert.Contains(t, doc, "TITLE:Engineer\r\n")
	assert.Contains(t, doc, "NOTE:Met at FOSDEM\r\n")
}

func TestBuildVCardOmitsEmptyProperties(t *testing.T) {
	doc := buildVCard("uid-2", ContactInput{
		FirstName: "Max",
		LastName:  "Mustermann",
	})

	assert.NotContains(t, doc, "EMAIL")
	assert.NotContains(t, doc, "TEL")
	assert.NotContains(t, doc, "ORG")
	assert.NotContains(t, doc, "TITLE")
	assert.NotContains(t, doc, "NOTE")
}

func TestBuildVCardEscapesStructuredText(t *testing.T) {
	doc := buildVCard("uid-3", ContactInput{
		FirstName: "Jane",
		LastName:  "Smith; Jones",
		Company:   "Acme, Inc.",
	})

	assert.Contains(t, doc, "N:Smith\\; Jones;Jane;;;\r\n")
	assert.Contains(t, doc, "ORG:Acme\\, Inc.\r\n")
}
