package iosync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleOK(t *testing.T) {
	tests := []struct {
		msg   string
		title string
		ok    bool
	}{
		{"plain name", "Taras Shevchenko", true},
		{"name with disambiguator", "Oleh Skrypka (singer)", true},
		{"unicode name", "Leś Kurbas", true},
		{"empty", "", false},
		{"list page", "List of Ukrainian writers", false},
		{"lists page", "Lists of people from Kyiv", false},
		{"disambiguation", "Bohdan (disambiguation)", false},
		{"category namespace", "Category:Ukrainian poets", false},
		{"template namespace", "Template:Infobox person", false},
		{"multiword namespace", "User talk:Editor", false},
	}

	for _, v := range tests {
		assert.Equal(t, v.ok, titleOK(v.title), v.msg)
	}
}
