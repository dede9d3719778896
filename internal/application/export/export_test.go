package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbt-notepad/internal/config"
	"rbt-notepad/internal/domain/entity"
)

var fixedNow = time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

func sampleDoc() Document {
	return Document{
		Note:        "Line one.\n\nLine two.",
		ClientName:  "X",
		SessionDate: "D",
		StartTime:   "S",
		EndTime:     "E",
	}
}

func testRegistry() *Registry {
	r := NewRegistry(&config.Config{})
	r.now = func() time.Time { return fixedNow }
	return r
}

func TestFileBase(t *testing.T) {
	assert.Equal(t, "RBT_Note_Al_ex_P__2024-01-05", FileBase("Al-ex P.", "2024-01-05", fixedNow))
	assert.Equal(t, "RBT_Note_Client_2024-03-09", FileBase("", "", fixedNow))
	assert.Equal(t, "RBT_Note_Jos__2024-01-05", FileBase("José", "2024-01-05", fixedNow))
}

func TestHeaderLines_DefaultsToNA(t *testing.T) {
	h := Document{ClientName: "Alex"}.HeaderLines()
	assert.Equal(t, [3]string{"Client: Alex", "Date: N/A", "Time: N/A - N/A"}, h)
}

func TestTextExport_ExactContent(t *testing.T) {
	b, err := TextExporter{}.Export(sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, "Client: X\nDate: D\nTime: S - E\n\nLine one.\n\nLine two.", string(b))
}

func TestDocxExport_DropsBlankLines(t *testing.T) {
	b, err := DocxExporter{}.Export(sampleDoc())
	require.NoError(t, err)

	paras := docxParagraphs(t, b)
	require.Equal(t, []string{"Client: X", "Date: D", "Time: S - E", "Line one.", "Line two."}, paras)
	assert.Len(t, paras[3:], 2)
}

func TestNoteParagraphs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NoteParagraphs("a\r\n \n\nb\n"))
	assert.Empty(t, NoteParagraphs("\n\n"))
}

func TestPDFExport_SinglePage(t *testing.T) {
	b, err := NewPDFExporter(config.PDFConfig{}).Export(sampleDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
	assert.Equal(t, 1, pdfPages(t, b))
}

func TestPDFExport_PaginatesLongNotes(t *testing.T) {
	doc := sampleDoc()
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = "Client completed the task with one verbal prompt."
	}
	doc.Note = strings.Join(lines, "\n")

	b, err := NewPDFExporter(config.PDFConfig{}).Export(doc)
	require.NoError(t, err)
	// A4 可用高度约 (297-15-50)/6 ≈ 39 行，后续页约 (297-15-20)/6 ≈ 44 行
	assert.Equal(t, 3, pdfPages(t, b))
}

func TestPDFExport_NonLatinTextDoesNotFail(t *testing.T) {
	doc := sampleDoc()
	doc.ClientName = "Zoë “Z” 王"
	doc.Note = "Résumé — done… ✓"
	_, err := NewPDFExporter(config.PDFConfig{}).Export(doc)
	require.NoError(t, err)
	assert.Equal(t, `Zoë "Z" ?`, foldLatin1(doc.ClientName))
}

func TestRegistry_Export(t *testing.T) {
	r := testRegistry()
	doc := sampleDoc()
	doc.ClientName = "Al-ex P."
	doc.SessionDate = ""

	f, err := r.Export(context.Background(), "TXT", doc)
	require.NoError(t, err)
	assert.Equal(t, "RBT_Note_Al_ex_P__2024-03-09.txt", f.Name)
	assert.Equal(t, "text/plain; charset=utf-8", f.MimeType)

	f, err = r.Export(context.Background(), FormatDocx, doc)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(f.Name, ".docx"))

	_, err = r.Export(context.Background(), "rtf", doc)
	require.ErrorIs(t, err, ErrUnknownFormat)

	doc.Note = "  "
	_, err = r.Export(context.Background(), FormatPDF, doc)
	require.ErrorIs(t, err, ErrEmptyNote)
	assert.False(t, errors.Is(err, ErrUnknownFormat))
	assert.False(t, errors.Is(ErrUnknownFormat.WithDetail("rtf"), ErrEmptyNote))

	assert.Equal(t, []string{"docx", "pdf", "txt"}, r.Formats())
}

type failingExporter struct{ TextExporter }

func (failingExporter) Export(Document) ([]byte, error) { return nil, errors.New("disk full") }

func TestRegistry_ExportFailureSurfaced(t *testing.T) {
	r := testRegistry()
	r.exporters[FormatText] = failingExporter{}

	_, err := r.Export(context.Background(), FormatText, sampleDoc())
	require.ErrorIs(t, err, ErrExportFailed)
	assert.Contains(t, err.Error(), "disk full")
}

type fakeTarget struct {
	available bool
	err       error
	got       []Payload
}

func (f *fakeTarget) Available() bool { return f.available }
func (f *fakeTarget) Share(_ context.Context, p Payload) error {
	f.got = append(f.got, p)
	return f.err
}

type fakeClipboard struct {
	available bool
	err       error
	got       []string
}

func (f *fakeClipboard) Available() bool { return f.available }
func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	f.got = append(f.got, text)
	return f.err
}

func TestSharer_NativeShare(t *testing.T) {
	native := &fakeTarget{available: true}
	clip := &fakeClipboard{available: true}
	s := &Sharer{Native: native, Clipboard: clip}

	out, err := s.Share(context.Background(), NotePayload("Alex P.", "note"))
	require.NoError(t, err)
	assert.Equal(t, ShareShared, out)
	assert.Equal(t, "RBT Session Note for Alex P.", native.got[0].Title)
	assert.Empty(t, clip.got)
}

func TestSharer_CancelIsNotAnError(t *testing.T) {
	s := &Sharer{Native: &fakeTarget{available: true, err: ErrShareCanceled}}
	out, err := s.Share(context.Background(), Payload{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, ShareCanceled, out)
}

func TestSharer_NativeFailureSurfaced(t *testing.T) {
	clip := &fakeClipboard{available: true}
	s := &Sharer{Native: &fakeTarget{available: true, err: errors.New("denied")}, Clipboard: clip}
	_, err := s.Share(context.Background(), Payload{Text: "x"})
	require.Error(t, err)
	assert.Empty(t, clip.got)
}

func TestSharer_FallbackChain(t *testing.T) {
	clip := &fakeClipboard{available: true, err: errors.New("blocked")}
	manual := &fakeClipboard{available: true}
	s := &Sharer{Native: &fakeTarget{available: false}, Clipboard: clip, Manual: manual}

	out, err := s.Share(context.Background(), Payload{Text: "note"})
	require.NoError(t, err)
	assert.Equal(t, ShareCopied, out)
	assert.Equal(t, []string{"note"}, clip.got)
	assert.Equal(t, []string{"note"}, manual.got)

	s = &Sharer{Clipboard: &fakeClipboard{available: false}, Manual: &fakeClipboard{available: false}}
	_, err = s.Share(context.Background(), Payload{Text: "note"})
	require.ErrorIs(t, err, ErrNoShareMethod)
}

func TestConversationPayload(t *testing.T) {
	var tr entity.Transcript
	tr.Append(entity.ChatRoleModel, "Idea")
	p := ConversationPayload(tr)
	assert.Equal(t, "RBT Session Enhancement Ideas", p.Title)
	assert.Equal(t, "AI Assistant:\nIdea", p.Text)
}

// docxParagraphs 返回 word/document.xml 中每个非空段落的文本
func docxParagraphs(t *testing.T, b []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	var body io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			require.NoError(t, err)
		}
	}
	require.NotNil(t, body, "document.xml missing")
	defer body.Close()

	var (
		paras   []string
		current strings.Builder
		inPara  bool
		inText  bool
	)
	dec := xml.NewDecoder(body)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				if inPara && current.Len() > 0 {
					paras = append(paras, current.String())
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inPara && inText {
				current.Write(el)
			}
		}
	}
	return paras
}

func pdfPages(t *testing.T, b []byte) int {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	return r.NumPage()
}
