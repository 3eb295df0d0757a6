package scew

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/felipeprov/scew/errors"
)

func TestPrintCanonicalDocument(t *testing.T) {
	doc, err := ParseString(`<?xml version="1.0"?><a>hi</a>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	got, err := DocumentString(doc)
	if err != nil {
		t.Fatalf("DocumentString() error = %v", err)
	}
	if want := "<?xml version=\"1.0\"?>\n<a>hi</a>\n"; got != want {
		t.Fatalf("DocumentString() = %q, want %q", got, want)
	}
}

func TestPrintSelfClosing(t *testing.T) {
	element := NewElement("empty")

	got, err := ElementString(element)
	if err != nil {
		t.Fatalf("ElementString() error = %v", err)
	}
	if want := "<empty/>\n"; got != want {
		t.Fatalf("ElementString() = %q, want %q", got, want)
	}

	// Explicitly empty contents are present, so the element keeps both tags.
	element.SetContents("")
	got, err = ElementString(element)
	if err != nil {
		t.Fatalf("ElementString() error = %v", err)
	}
	if want := "<empty></empty>\n"; got != want {
		t.Fatalf("ElementString() = %q, want %q", got, want)
	}
}

func TestPrintIndentation(t *testing.T) {
	doc, err := ParseString(`<a><b><c/></b></a>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	got, err := DocumentString(doc)
	if err != nil {
		t.Fatalf("DocumentString() error = %v", err)
	}
	want := "<?xml version=\"1.0\"?>\n" +
		"<a>\n" +
		"   <b>\n" +
		"      <c/>\n" +
		"   </b>\n" +
		"</a>\n"
	if got != want {
		t.Fatalf("DocumentString() = %q, want %q", got, want)
	}
}

func TestPrintIndentWidth(t *testing.T) {
	doc, err := ParseString(`<a><b/></a>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	tests := []struct {
		name   string
		spaces int
		want   string
	}{
		{name: "two spaces", spaces: 2, want: "<?xml version=\"1.0\"?>\n<a>\n  <b/>\n</a>\n"},
		{name: "zero spaces", spaces: 0, want: "<?xml version=\"1.0\"?>\n<a>\n<b/>\n</a>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			printer, err := NewPrinterWithOptions(&sb, NewPrinterOptions().WithIndentSpaces(tt.spaces))
			if err != nil {
				t.Fatalf("NewPrinterWithOptions() error = %v", err)
			}
			if err := printer.Print(doc); err != nil {
				t.Fatalf("Print() error = %v", err)
			}
			if got := sb.String(); got != tt.want {
				t.Fatalf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintUnindented(t *testing.T) {
	doc, err := ParseString(`<a><b>hi</b><c/></a>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	var sb strings.Builder
	printer, err := NewPrinterWithOptions(&sb, NewPrinterOptions().WithIndented(false))
	if err != nil {
		t.Fatalf("NewPrinterWithOptions() error = %v", err)
	}
	if err := printer.Print(doc); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if got, want := sb.String(), `<?xml version="1.0"?><a><b>hi</b><c/></a>`; got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintDeclarationForms(t *testing.T) {
	tests := []struct {
		name       string
		encoding   string
		standalone Standalone
		want       string
	}{
		{
			name: "version only",
			want: `<?xml version="1.0"?>`,
		},
		{
			name:     "with encoding",
			encoding: "UTF-8",
			want:     `<?xml version="1.0" encoding="UTF-8"?>`,
		},
		{
			name:       "standalone yes",
			standalone: StandaloneYes,
			want:       `<?xml version="1.0" standalone="yes"?>`,
		},
		{
			name:       "encoding and standalone no",
			encoding:   "UTF-8",
			standalone: StandaloneNo,
			want:       `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument()
			doc.SetEncoding(tt.encoding)
			doc.SetStandalone(tt.standalone)
			doc.SetRoot(NewElement("r"))

			got, err := DocumentString(doc)
			if err != nil {
				t.Fatalf("DocumentString() error = %v", err)
			}
			if want := tt.want + "\n<r/>\n"; got != want {
				t.Fatalf("DocumentString() = %q, want %q", got, want)
			}
		})
	}
}

func TestPrintAttributesVerbatim(t *testing.T) {
	element := NewElement("e")
	element.AddAttribute("k", "a&b")

	got, err := ElementString(element)
	if err != nil {
		t.Fatalf("ElementString() error = %v", err)
	}
	if want := "<e k=\"a&b\"/>\n"; got != want {
		t.Fatalf("ElementString() = %q, want %q", got, want)
	}
}

func TestPrintAttributeOrderRoundTrip(t *testing.T) {
	doc, err := ParseString(`<e a="1" b="2" c="3" d="4" e="5"/>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	got, err := DocumentString(doc)
	if err != nil {
		t.Fatalf("DocumentString() error = %v", err)
	}
	if want := "<?xml version=\"1.0\"?>\n<e a=\"1\" b=\"2\" c=\"3\" d=\"4\" e=\"5\"/>\n"; got != want {
		t.Fatalf("DocumentString() = %q, want %q", got, want)
	}
}

func TestPrintMixedNode(t *testing.T) {
	element := NewElement("a")
	element.SetContents("text")
	element.NewElement("b")

	got, err := ElementString(element)
	if err != nil {
		t.Fatalf("ElementString() error = %v", err)
	}
	if want := "<a>   <b/>\ntext</a>\n"; got != want {
		t.Fatalf("ElementString() = %q, want %q", got, want)
	}
}

func TestPrintElementDepth(t *testing.T) {
	var sb strings.Builder
	printer := NewPrinter(&sb)

	if err := printer.PrintElement(NewElement("deep"), 2); err != nil {
		t.Fatalf("PrintElement() error = %v", err)
	}
	if got, want := sb.String(), "      <deep/>\n"; got != want {
		t.Fatalf("PrintElement() = %q, want %q", got, want)
	}
}

func TestPrintAttribute(t *testing.T) {
	var sb strings.Builder
	printer := NewPrinter(&sb)

	if err := printer.PrintAttribute(NewAttribute("k", "v")); err != nil {
		t.Fatalf("PrintAttribute() error = %v", err)
	}
	if got, want := sb.String(), ` k="v"`; got != want {
		t.Fatalf("PrintAttribute() = %q, want %q", got, want)
	}
}

func TestPrintAttributes(t *testing.T) {
	element := NewElement("e")
	element.AddAttribute("a", "1")
	element.AddAttribute("b", "2")

	var sb strings.Builder
	printer := NewPrinter(&sb)

	if err := printer.PrintAttributes(element); err != nil {
		t.Fatalf("PrintAttributes() error = %v", err)
	}
	if got, want := sb.String(), ` a="1" b="2"`; got != want {
		t.Fatalf("PrintAttributes() = %q, want %q", got, want)
	}

	if err := printer.PrintAttributes(nil); err == nil {
		t.Fatal("PrintAttributes(nil) error = nil, want error")
	}
}

func TestPrintChildren(t *testing.T) {
	parent := NewElement("parent")
	parent.NewElement("a").SetContents("x")
	parent.NewElement("b")

	var sb strings.Builder
	printer := NewPrinter(&sb)

	if err := printer.PrintChildren(parent, 0); err != nil {
		t.Fatalf("PrintChildren() error = %v", err)
	}
	if got, want := sb.String(), "   <a>x</a>\n   <b/>\n"; got != want {
		t.Fatalf("PrintChildren() = %q, want %q", got, want)
	}

	if err := printer.PrintChildren(nil, 0); err == nil {
		t.Fatal("PrintChildren(nil) error = nil, want error")
	}
	if err := printer.PrintChildren(parent, -1); err == nil {
		t.Fatal("PrintChildren() with negative depth error = nil, want error")
	}
}

// failingWriter accepts allow writes, then fails every later attempt.
type failingWriter struct {
	allow  int
	writes int
	failed error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.allow {
		w.failed = errors.New(errors.CodeIO, "sink full")
		return 0, w.failed
	}
	return len(p), nil
}

func TestPrintSinkFailureShortCircuits(t *testing.T) {
	doc, err := ParseString(`<a><b>hi</b></a>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	sink := &failingWriter{allow: 3}
	err = NewPrinter(sink).Print(doc)
	if !errors.Is(err, errors.CodeIO) {
		t.Fatalf("Print() error = %v, want code %q", err, errors.CodeIO)
	}

	// The first failure is the last write the sink ever sees.
	if got, want := sink.writes, sink.allow+1; got != want {
		t.Fatalf("sink writes = %d, want %d", got, want)
	}

	structured, ok := errors.AsError(err)
	if !ok {
		t.Fatalf("Print() error = %v, want structured error", err)
	}
	if structured.Err != sink.failed {
		t.Fatalf("wrapped error = %v, want first sink failure", structured.Err)
	}
}

func TestPrintOutputEncoding(t *testing.T) {
	doc := NewDocument()
	doc.SetEncoding("ISO-8859-1")
	root := NewElement("a")
	root.SetContents("café")
	doc.SetRoot(root)

	var buf bytes.Buffer
	printer, err := NewPrinterWithOptions(&buf, NewPrinterOptions().WithEncoding(charmap.ISO8859_1))
	if err != nil {
		t.Fatalf("NewPrinterWithOptions() error = %v", err)
	}
	if err := printer.Print(doc); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	want := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<a>caf\xe9</a>\n"
	if got := buf.String(); got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintArgumentErrors(t *testing.T) {
	var sb strings.Builder
	printer := NewPrinter(&sb)

	if err := printer.Print(nil); err == nil {
		t.Fatal("Print(nil) error = nil, want error")
	}
	if err := printer.Print(NewDocument()); err == nil {
		t.Fatal("Print() without root error = nil, want error")
	}
	if err := printer.PrintElement(nil, 0); err == nil {
		t.Fatal("PrintElement(nil) error = nil, want error")
	}
	if err := printer.PrintElement(NewElement("a"), -1); err == nil {
		t.Fatal("PrintElement() with negative depth error = nil, want error")
	}
}

func BenchmarkPrint(b *testing.B) {
	doc, err := ParseString(`<catalog><item id="1"><name>widget</name><price>10.50</price></item><item id="2"><name>gadget</name><price>7.25</price></item></catalog>`)
	if err != nil {
		b.Fatal(err)
	}

	var sb strings.Builder
	printer := NewPrinter(&sb)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sb.Reset()
		if err := printer.Print(doc); err != nil {
			b.Fatal(err)
		}
	}
}
