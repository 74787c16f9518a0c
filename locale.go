package oasloc

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLocale canonicalizes a locale code to BCP 47 form ("pt-BR").
// Underscore separators are accepted ("pt_BR"). An unparseable code is an
// error; the CLI rejects such locales before any pipeline work starts.
func NormalizeLocale(code string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

// BaseLang returns the base language of a locale code ("pt" from "pt-BR").
func BaseLang(code string) string {
	code = strings.ReplaceAll(code, "_", "-")
	if i := strings.IndexByte(code, '-'); i > 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}
