package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Company info
	CompanyName string `json:"CompanyName"`
	AppName     string `json:"AppName"`

	// URLs
	SupportURL string `json:"SupportURL"`

	// Action URLs
	FeedURL string `json:"FeedURL"`

	// Additional data
	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func funcs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

const Welcome = "welcome"

// Every template file is parsed once. Subject and text parts use
// text/template; the html part is escaped with html/template.
var (
	textSet = texttpl.Must(texttpl.New("").Funcs(funcs()).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("").Funcs(funcs()).ParseFS(FS, "*.html.tmpl"))
)

// Known reports whether name has a complete subject/text/html set.
func Known(name string) bool {
	return textSet.Lookup(name+".subject.tmpl") != nil &&
		textSet.Lookup(name+".text.tmpl") != nil &&
		htmlSet.Lookup(name+".html.tmpl") != nil
}

// Render executes <name>.subject.tmpl, <name>.text.tmpl and
// <name>.html.tmpl with data. The subject is trimmed to one line.
func Render(name string, data any) (subject string, text string, html string, err error) {
	if !Known(name) {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := textSet.ExecuteTemplate(&buf, name+".subject.tmpl", data); err != nil {
		return "", "", "", fmt.Errorf("exec subject %q: %w", name, err)
	}
	subject = strings.Join(strings.Fields(buf.String()), " ")

	buf.Reset()
	if err := textSet.ExecuteTemplate(&buf, name+".text.tmpl", data); err != nil {
		return "", "", "", fmt.Errorf("exec text %q: %w", name, err)
	}
	text = buf.String()

	buf.Reset()
	if err := htmlSet.ExecuteTemplate(&buf, name+".html.tmpl", data); err != nil {
		return "", "", "", fmt.Errorf("exec html %q: %w", name, err)
	}
	return subject, text, buf.String(), nil
}
