package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale — украинский, как в продакшн-книге.
const DefaultLocale = "uk"

var locales = map[string]map[string]string{}

var matcher = language.NewMatcher([]language.Tag{
	language.Ukrainian,
	language.Russian,
})

func init() {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		panic(fmt.Sprintf("i18n: read locales: %v", err))
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("i18n: read %s: %v", e.Name(), err))
		}
		msgs := map[string]string{}
		if err := json.Unmarshal(data, &msgs); err != nil {
			panic(fmt.Sprintf("i18n: parse %s: %v", e.Name(), err))
		}
		locales[strings.TrimSuffix(e.Name(), ".json")] = msgs
	}
}

// Locale сводит телеграмовский language_code к поддерживаемой локали.
func Locale(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return DefaultLocale
	}
	// Телеграм встречается с legacy-кодом "ua".
	if strings.HasPrefix(code, "ua") || strings.HasPrefix(code, "uk") {
		return "uk"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLocale
	}
	if idx == 1 {
		return "ru"
	}
	return DefaultLocale
}

// T возвращает перевод ключа с подстановкой пар {имя}=значение.
// Неизвестный ключ возвращается как есть.
func T(locale, key string, args ...any) string {
	msgs, ok := locales[locale]
	if !ok {
		msgs = locales[DefaultLocale]
	}
	text, ok := msgs[key]
	if !ok {
		if text, ok = locales[DefaultLocale][key]; !ok {
			return key
		}
	}
	for i := 0; i+1 < len(args); i += 2 {
		placeholder := "{" + fmt.Sprint(args[i]) + "}"
		text = strings.ReplaceAll(text, placeholder, fmt.Sprint(args[i+1]))
	}
	return text
}
