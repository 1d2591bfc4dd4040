package ui

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"
)

// Attrs holds extra HTML attributes, rendered in sorted order so output
// stays deterministic.
type Attrs map[string]string

func (a Attrs) render(w io.Writer) error {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, templ.EscapeString(k), templ.EscapeString(a[k])); err != nil {
			return err
		}
	}
	return nil
}

// Link is a navigation entry.
type Link struct {
	Href  string
	Label string
}

// Layout wraps body in a minimal HTML document. head is rendered inside
// <head> after the title and may be nil.
func Layout(title string, head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!doctype html><html><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title>", templ.EscapeString(title)); err != nil {
			return err
		}
		if head != nil {
			if err := head.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</head><body>"); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// NavBar renders a nav element with a brand link and a list of links.
func NavBar(brand string, links []Link) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<nav class="navbar"><a class="navbar-brand" href="/">%s</a><ul>`, templ.EscapeString(brand)); err != nil {
			return err
		}
		for _, l := range links {
			if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, templ.EscapeString(l.Href), templ.EscapeString(l.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul></nav>")
		return err
	})
}

// Card renders a titled card around body. body may be nil.
func Card(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="card"><h3 class="card-title">%s</h3><div class="card-body">`, templ.EscapeString(title)); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div></div>")
		return err
	})
}

// Alert renders a dismissible message. kind becomes a CSS modifier class,
// typically "success", "warning", or "error".
func Alert(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="alert alert-%s" role="alert">%s</div>`,
			templ.EscapeString(kind), templ.EscapeString(message))
		return err
	})
}

// Button renders a button element with optional extra attributes.
func Button(label string, attrs Attrs) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<button class="btn"`); err != nil {
			return err
		}
		if err := attrs.render(w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, ">%s</button>", templ.EscapeString(label))
		return err
	})
}

// Input renders a labeled form input.
func Input(typ, name, label, value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<label for="%[2]s">%[3]s</label><input type="%[1]s" id="%[2]s" name="%[2]s" value="%[4]s">`,
			templ.EscapeString(typ), templ.EscapeString(name),
			templ.EscapeString(label), templ.EscapeString(value))
		return err
	})
}

// Form wraps fields in a form element.
func Form(action, method string, fields ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<form action="%s" method="%s">`,
			templ.EscapeString(action), templ.EscapeString(method)); err != nil {
			return err
		}
		for _, f := range fields {
			if err := f.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</form>")
		return err
	})
}
