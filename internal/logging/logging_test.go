package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_WritesJSONWithServiceField(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	New(&buf, "taskflow").WithField("op", "list").Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if line["message"] != "hello" || line["service"] != "taskflow" || line["op"] != "list" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("missing ts field: %v", line)
	}
}

func TestNew_RespectsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	var buf bytes.Buffer
	New(&buf, "taskflow").Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestToFile_Appends(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "taskflow.log")
	log, c, err := ToFile(p, "taskflow")
	if err != nil {
		t.Fatalf("to file: %v", err)
	}
	log.Error("first")
	c.Close()

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(b, []byte(`"first"`)) {
		t.Fatalf("log line missing: %q", b)
	}
}
