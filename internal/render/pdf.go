package render

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/pkg/models"
)

// PDFDocument exposes a PDF's per-page extracted text as a Document.
// It does not implement PageImager: rasterizing PDF pages belongs to the
// external rendering capability, so blur analysis of a PDF needs an
// injected renderer that understands it.
type PDFDocument struct {
	ctx *model.Context
}

// NewPDFDocument parses a PDF. A parse failure is a fatal decode error for
// the whole document analysis.
func NewPDFDocument(rs io.ReadSeeker) (*PDFDocument, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, apperrors.NewDecodeError("could not parse PDF document", err)
	}
	return &PDFDocument{ctx: ctx}, nil
}

// PageCount returns the number of pages
func (d *PDFDocument) PageCount() int {
	return d.ctx.PageCount
}

// PageText extracts the shown text strings of one page from its content
// stream, one item per text-showing operator, in stream order. Pages whose
// content cannot be read yield zero items rather than an error; a scanned
// page has no text operators at all.
func (d *PDFDocument) PageText(pageIndex int) ([]models.TextItem, error) {
	if pageIndex < 1 || pageIndex > d.ctx.PageCount {
		return nil, apperrors.NewValidationError("page index out of range", nil)
	}

	r, err := pdfcpu.ExtractPageContent(d.ctx, pageIndex)
	if err != nil || r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return nil, nil
	}
	return textItemsFromStream(data), nil
}

// HasImageStreams reports whether any page carries image XObjects, the
// telltale of a scanned document.
func (d *PDFDocument) HasImageStreams() bool {
	if d.ctx.Optimize != nil {
		for pageNr := 1; pageNr <= d.ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(d.ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range d.ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

// pdfLiteralRe matches PDF string literals: (text)
var pdfLiteralRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// textItemsFromStream scans a content stream for the Tj, TJ and ' operators
// and returns each shown string as one text item.
func textItemsFromStream(data []byte) []models.TextItem {
	var items []models.TextItem

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		showsText := bytes.HasSuffix(line, []byte("Tj")) ||
			bytes.HasSuffix(line, []byte("TJ")) ||
			(bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")))
		if !showsText {
			continue
		}

		for _, m := range pdfLiteralRe.FindAllSubmatch(line, -1) {
			text := decodeLiteral(m[1])
			if strings.TrimSpace(text) != "" {
				items = append(items, models.TextItem{Text: text})
			}
		}
	}
	return items
}

// decodeLiteral resolves the basic PDF string escapes
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '(', ')', '\\':
			sb.WriteByte(raw[i])
		default:
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
