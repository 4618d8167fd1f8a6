package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// Translator resolves display strings for one locale and formats money
// amounts the way that locale groups digits.
type Translator struct {
	lang         string
	translations map[string]string
	money        *MoneyFormatter
}

// NewTranslator loads locales/<langCode>.yaml from fsys. currencySymbol is
// appended to every formatted amount.
func NewTranslator(fsys fs.FS, langCode, currencySymbol string) (*Translator, error) {
	filePath := path.Join("locales", fmt.Sprintf("%s.yaml", langCode))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", filePath, err)
	}
	t, err := newTranslatorFromBytes(data)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(langCode)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", langCode, err)
	}
	t.lang = langCode
	t.money = NewMoneyFormatter(tag, currencySymbol)
	return t, nil
}

// newTranslatorFromBytes builds a translator from raw YAML. Money falls back
// to Vietnamese grouping with the dong sign.
func newTranslatorFromBytes(data []byte) (*Translator, error) {
	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation file: %w", err)
	}
	return &Translator{
		translations: translations,
		money:        NewMoneyFormatter(language.Vietnamese, "₫"),
	}, nil
}

// T returns the template for key formatted with args, or the key itself
// when no translation exists.
func (t *Translator) T(key string, args ...any) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Money formats an amount, see MoneyFormatter.Format.
func (t *Translator) Money(v float64) string {
	return t.money.Format(v)
}

func (t *Translator) Lang() string { return t.lang }
