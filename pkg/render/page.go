package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vango-dev/vlite/pkg/dom"
)

// PageData contains everything needed to render a complete HTML page.
type PageData struct {
	// Body is rendered inside <body>. Usually the mount point, so the
	// element carrying the mount id is part of the output.
	Body dom.Node

	Title string

	// Lang defaults to "en".
	Lang string

	// StyleSheets are linked in order.
	StyleSheets []string

	// Styles are inlined in a single <style> element.
	Styles []string

	// Scripts are external script URLs, loaded with defer.
	Scripts []string

	// LiveReload is the websocket path that pushes fresh inner HTML for the
	// mount point. Empty disables the script.
	LiveReload string

	// MountID is the element the live script updates. Defaults to "app".
	MountID string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if page.Body != nil {
		if err := r.RenderToWriter(w, page.Body); err != nil {
			return err
		}
		io.WriteString(w, "\n")
	}
	if err := renderLiveScript(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	head := "<head>\n" +
		`  <meta charset="utf-8">` + "\n" +
		`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n"
	if _, err := io.WriteString(w, head); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	if len(page.Styles) > 0 {
		io.WriteString(w, "  <style>\n")
		for _, s := range page.Styles {
			// Style content is raw text; only a closing tag can break out.
			if _, err := fmt.Fprintf(w, "%s\n", escapeRawText(s, "style")); err != nil {
				return err
			}
		}
		io.WriteString(w, "  </style>\n")
	}
	for _, src := range page.Scripts {
		if _, err := fmt.Fprintf(w, `  <script defer src="%s"></script>`+"\n", escapeAttr(src)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

const liveScript = `<script>
(function () {
  var cfg = %s;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  function connect() {
    var ws = new WebSocket(proto + location.host + cfg.path);
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type !== "render") return;
      var el = document.getElementById(cfg.mount);
      if (el) el.innerHTML = msg.html;
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>
`

func renderLiveScript(w io.Writer, page PageData) error {
	if page.LiveReload == "" {
		return nil
	}
	mount := page.MountID
	if mount == "" {
		mount = "app"
	}
	cfg, err := json.Marshal(struct {
		Path  string `json:"path"`
		Mount string `json:"mount"`
	}{page.LiveReload, mount})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, liveScript, cfg)
	return err
}
