package scan

import (
	"io"
	"strings"
	"testing"
)

func collect(t *testing.T, input string) []Directive {
	t.Helper()
	s := NewScanner(strings.NewReader(input))
	var out []Directive
	for {
		d, err := s.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, d)
	}
}

func TestDirectivesPerLine(t *testing.T) {
	dirs := collect(t, "$$HEADERSTART\n$$UNITS/1.5\n$$LABEL/1,part\n")
	if len(dirs) != 3 {
		t.Fatalf("got %d directives", len(dirs))
	}
	if dirs[0].Name != "HEADERSTART" || len(dirs[0].Params) != 0 {
		t.Errorf("dirs[0] = %+v", dirs[0])
	}
	if dirs[1].Name != "UNITS" || len(dirs[1].Params) != 1 || dirs[1].Params[0] != "1.5" {
		t.Errorf("dirs[1] = %+v", dirs[1])
	}
	if dirs[2].Name != "LABEL" || len(dirs[2].Params) != 2 ||
		dirs[2].Params[0] != "1" || dirs[2].Params[1] != "part" {
		t.Errorf("dirs[2] = %+v", dirs[2])
	}
}

func TestMultipleDirectivesOneLine(t *testing.T) {
	dirs := collect(t, "$$HEADERSTART$$ASCII$$UNITS/2\n")
	if len(dirs) != 3 {
		t.Fatalf("got %d directives: %+v", len(dirs), dirs)
	}
	if dirs[0].Name != "HEADERSTART" || dirs[1].Name != "ASCII" || dirs[2].Name != "UNITS" {
		t.Errorf("names: %q %q %q", dirs[0].Name, dirs[1].Name, dirs[2].Name)
	}
}

func TestParamsSpanLines(t *testing.T) {
	dirs := collect(t, "$$POLYLINE/1,1,3,0,0\n10,0\n5,5\n$$GEOMETRYEND\n")
	if len(dirs) != 2 {
		t.Fatalf("got %d directives", len(dirs))
	}
	want := []string{"1", "1", "3", "0", "0", "10", "0", "5", "5"}
	if len(dirs[0].Params) != len(want) {
		t.Fatalf("params = %v", dirs[0].Params)
	}
	for i, p := range want {
		if dirs[0].Params[i] != p {
			t.Errorf("param %d = %q, want %q", i, dirs[0].Params[i], p)
		}
	}
}

func TestSingleDollarTerminatesValue(t *testing.T) {
	dirs := collect(t, "$$LAYER/5.0$\n$$GEOMETRYEND\n")
	if len(dirs) != 2 {
		t.Fatalf("got %d directives: %+v", len(dirs), dirs)
	}
	if len(dirs[0].Params) != 1 || dirs[0].Params[0] != "5.0" {
		t.Errorf("params = %v, want [5.0]", dirs[0].Params)
	}
}

func TestRawKeepsFreeTextSeparators(t *testing.T) {
	dirs := collect(t, "$$DATE/2026/08/25 build 7\n$$LABEL/1,front/left\n")
	if len(dirs) != 2 {
		t.Fatalf("got %d directives", len(dirs))
	}
	if dirs[0].Raw != "/2026/08/25 build 7" {
		t.Errorf("DATE raw = %q", dirs[0].Raw)
	}
	if dirs[1].Raw != "/1,front/left" {
		t.Errorf("LABEL raw = %q", dirs[1].Raw)
	}
}

func TestLineNumbers(t *testing.T) {
	dirs := collect(t, "\n\n$$HEADERSTART\n$$UNITS/1\n")
	if dirs[0].Line != 3 || dirs[1].Line != 4 {
		t.Errorf("lines = %d, %d", dirs[0].Line, dirs[1].Line)
	}
}

func TestTextBeforeFirstMarkerIgnored(t *testing.T) {
	dirs := collect(t, "junk prologue 1,2,3\nmore junk $$HEADERSTART\n")
	if len(dirs) != 1 || dirs[0].Name != "HEADERSTART" || dirs[0].Line != 2 {
		t.Fatalf("dirs = %+v", dirs)
	}
}

func TestInlineComment(t *testing.T) {
	dirs := collect(t, "$$UNITS/1 // scale factor //\n$$ASCII\n")
	if len(dirs) != 2 {
		t.Fatalf("got %d directives", len(dirs))
	}
	if len(dirs[0].Params) != 1 || dirs[0].Params[0] != "1" {
		t.Errorf("params = %v", dirs[0].Params)
	}
}

func TestCommentSpansLines(t *testing.T) {
	// One unmatched marker opens comment mode; everything up to the next
	// marker is comment, including the $$BINARY on the middle line.
	input := "$$HEADERSTART\n// lengthy remark\n$$BINARY still remark\nend of remark //$$ASCII\n"
	dirs := collect(t, input)
	if len(dirs) != 2 {
		t.Fatalf("got %d directives: %+v", len(dirs), dirs)
	}
	if dirs[0].Name != "HEADERSTART" || dirs[1].Name != "ASCII" {
		t.Errorf("names: %q %q", dirs[0].Name, dirs[1].Name)
	}
	if dirs[1].Line != 4 {
		t.Errorf("ASCII line = %d, want 4", dirs[1].Line)
	}
}

func TestCommentInsideParams(t *testing.T) {
	dirs := collect(t, "$$LAYER/ // annotated // 2.5\n")
	if len(dirs) != 1 || len(dirs[0].Params) != 1 || dirs[0].Params[0] != "2.5" {
		t.Fatalf("dirs = %+v", dirs)
	}
}

func TestUnterminatedLastLine(t *testing.T) {
	dirs := collect(t, "$$GEOMETRYEND")
	if len(dirs) != 1 || dirs[0].Name != "GEOMETRYEND" {
		t.Fatalf("dirs = %+v", dirs)
	}
}

func TestCRLF(t *testing.T) {
	dirs := collect(t, "$$UNITS/1\r\n$$ASCII\r\n")
	if len(dirs) != 2 || dirs[0].Params[0] != "1" {
		t.Fatalf("dirs = %+v", dirs)
	}
}

func TestBytesReadAndOnLine(t *testing.T) {
	input := "$$HEADERSTART\n$$ASCII\n"
	s := NewScanner(strings.NewReader(input))
	var calls int
	var last int64
	s.OnLine(func(n int64) {
		calls++
		last = n
	})
	for {
		if _, err := s.Next(); err == io.EOF {
			break
		}
	}
	if calls != 2 {
		t.Errorf("OnLine calls = %d, want 2", calls)
	}
	if last != int64(len(input)) || s.BytesRead() != int64(len(input)) {
		t.Errorf("bytes = %d, want %d", last, len(input))
	}
	if s.Line() != 2 {
		t.Errorf("lines = %d, want 2", s.Line())
	}
}
