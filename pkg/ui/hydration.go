package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// DefaultHydrationID is the element ID client scripts read the page
// payload from.
const DefaultHydrationID = "__loom_data__"

// HydrationData embeds a JSON payload in the page for client-side code.
// json.Marshal escapes angle brackets, so the payload cannot break out
// of the script element.
func HydrationData(id string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if id == "" {
			id = DefaultHydrationID
		}

		payload, err := json.Marshal(data)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(w, `<script id="%s" type="application/json">%s</script>`,
			templ.EscapeString(id), payload)
		return err
	})
}
