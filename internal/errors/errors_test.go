package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "mount error",
			code:    "E101",
			wantMsg: "Mount target not found",
			wantCat: CategoryMount,
		},
		{
			name:    "config error",
			code:    "E201",
			wantMsg: "Config file could not be parsed",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError(t *testing.T) {
	if got := New("E101").Error(); got != "E101: Mount target not found" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&Error{Message: "plain"}).Error(); got != "plain" {
		t.Errorf("Error() = %q", got)
	}
	cause := fmt.Errorf("boom")
	if got := New("E104").Wrap(cause).Error(); got != "E104: Render pass failed: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk")
	err := fmt.Errorf("loading: %w", New("E201").Wrap(cause))

	if !stderrors.Is(err, cause) {
		t.Error("cause not reachable through errors.Is")
	}
	if !stderrors.Is(err, New("E201")) {
		t.Error("code match failed")
	}
	if stderrors.Is(err, New("E202")) {
		t.Error("different code matched")
	}
	if !HasCode(err, "E201") || HasCode(err, "E101") {
		t.Error("HasCode mismatch")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E104") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("E101")
	if FromError(fmt.Errorf("x: %w", orig), "E104") != orig {
		t.Error("existing *Error was re-wrapped")
	}
	plain := stderrors.New("plain")
	got := FromError(plain, "E104")
	if got.Code != "E104" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "route %q", "#/x")
	if err.Message != `route "#/x"` || err.Category != CategoryCLI {
		t.Errorf("Newf = %+v", err)
	}
}

func TestRegistry(t *testing.T) {
	for _, code := range Codes() {
		tmpl, ok := Lookup(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
	}
	if got := CodesIn(CategoryConfig); strings.Join(got, ",") != "E201,E202,E203" {
		t.Errorf("config codes = %v", got)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWithLocationFromYAMLError(t *testing.T) {
	content := "mountId: app\nkeyed:\n  tag: [ul\n"
	path := writeFile(t, "vlite.yaml", content)

	var out map[string]any
	yamlErr := yaml.Unmarshal([]byte(content), &out)
	if yamlErr == nil {
		t.Fatal("expected a yaml error")
	}

	err := New("E201").Wrap(yamlErr).WithLocationFromError(path, yamlErr)
	if err.Location == nil || err.Location.Line == 0 {
		t.Fatalf("no location derived from %q", yamlErr)
	}
	if len(err.Context) == 0 {
		t.Error("context lines not loaded")
	}
}

func TestWithLocationFromJSONError(t *testing.T) {
	content := "{\n  \"mountId\": \"app\",\n  \"port\": ,\n}\n"
	path := writeFile(t, "vlite.json", content)

	var out map[string]any
	jsonErr := json.Unmarshal([]byte(content), &out)
	err := New("E201").WithLocationFromError(path, jsonErr)
	if err.Location == nil || err.Location.Line != 3 {
		t.Fatalf("location = %v, want line 3", err.Location)
	}
}

func TestWithLocationFromErrorWithoutPosition(t *testing.T) {
	err := New("E201").WithLocationFromError("missing.yaml", stderrors.New("no position"))
	if err.Location != nil {
		t.Errorf("location = %v, want none", err.Location)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	path := writeFile(t, "vlite.yaml", "a: 1\nb: 2\nc: 3\nd: 4\ne: 5\n")
	err := New("E202").
		WithLocation(path, 3, 4).
		WithDetailf("port %d out of range", 70000).
		WithSuggestion("use a port between 1 and 65535").
		Wrap(stderrors.New("bad port"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E202: Invalid configuration",
		path + ":3:4",
		"→    3 │ c: 3",
		"port 70000 out of range",
		"Cause: bad port",
		"Hint: use a port between 1 and 65535",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors not disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E101")
	err.Location = &Location{File: "index.html", Line: 4}
	if got := err.FormatCompact(); got != "index.html:4: E101: Mount target not found" {
		t.Errorf("FormatCompact = %q", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("E301").WithSuggestion("try #/active").Wrap(stderrors.New("nope"))
	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatal(jerr)
	}
	var got map[string]any
	if jerr := json.Unmarshal(data, &got); jerr != nil {
		t.Fatal(jerr)
	}
	if got["code"] != "E301" || got["cause"] != "nope" || got["suggestion"] != "try #/active" {
		t.Errorf("json = %s", data)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, fmt.Errorf("wrapped: %w", New("E103")))
	if !strings.Contains(buf.String(), "ERROR E103: App not mounted") {
		t.Errorf("Print = %q", buf.String())
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Print = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}
