package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"socprobe/internal/domain"
)

func TestJSONUsesFieldTags(t *testing.T) {
	b, err := Marshal(FormatJSON, domain.CPULoad{Total: 80, PerCore: []float64{100, 25}})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != `{"total_load":80,"per_core_load":[100,25]}` {
		t.Errorf("Marshal() = %s", got)
	}
}

func TestCBORIsDeterministic(t *testing.T) {
	snap := domain.Snapshot{
		CPU:        domain.CPUInfo{Model: "SM8550"},
		RecordedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	a, err := Marshal(FormatCBOR, snap)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(FormatCBOR, snap)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding the same snapshot twice differs")
	}

	var back domain.Snapshot
	if err := Unmarshal(FormatCBOR, a, &back); err != nil {
		t.Fatal(err)
	}
	if back.CPU.Model != "SM8550" || !back.RecordedAt.Equal(snap.RecordedAt) {
		t.Errorf("decoded = %+v", back)
	}
}

func TestStreamEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := enc.Encode(domain.ThermalZone{Zone: i}); err != nil {
			t.Fatal(err)
		}
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("got %d lines, want 3", n)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Marshal("xml", 1); err == nil {
		t.Error("Marshal(xml) should fail")
	}
	if Valid("xml") || !Valid(FormatCBOR) {
		t.Error("Valid() disagrees with the supported formats")
	}
	if ContentType(FormatCBOR) != ContentTypeCBOR || ContentType(FormatJSON) != ContentTypeJSON {
		t.Error("ContentType() mismatch")
	}
}
