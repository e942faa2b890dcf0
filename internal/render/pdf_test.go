package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"

	"pharmacare-system/internal/billing"
)

func sampleInvoice(itemCount int) *billing.Invoice {
	items := make([]billing.InvoiceItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		items = append(items, billing.InvoiceItem{
			Product: billing.Product{
				Name:        fmt.Sprintf("Item %d", i+1),
				BatchNumber: fmt.Sprintf("B%03d", i+1),
				HSNCode:     "3004",
				ExpiryDate:  "2025-12",
				Rate:        decimal.RequireFromString("25.50"),
				GSTRate:     12,
			},
			Quantity: 2,
		})
	}
	customer := billing.Customer{Name: "Sharma Medical Store", GSTIN: "27AAAPL1234C1ZV"}
	return billing.NewInvoice("INV-007", "2024-06-01", customer, items, billing.PaymentCash, "")
}

func tinyPNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func pageCount(data []byte) int {
	// Page dictionaries are uncompressed; every page carries "/Type /Page"
	// and the tree root adds one "/Type /Pages".
	return bytes.Count(data, []byte("/Type /Page")) - 1
}

func TestGenerateDeterministic(t *testing.T) {
	inv := sampleInvoice(3)
	settings := billing.DefaultSettings()

	a, err := Generate(inv, settings, ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(inv, settings, ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Error("two renders of the same invoice differ")
	}
}

func TestGenerateModes(t *testing.T) {
	inv := sampleInvoice(1)
	settings := billing.DefaultSettings()

	download, err := Generate(inv, settings, ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	preview, err := Generate(inv, settings, ModePreview)
	if err != nil {
		t.Fatal(err)
	}

	if download.Filename != "INV-007.pdf" {
		t.Errorf("filename = %s, want INV-007.pdf", download.Filename)
	}
	if download.Inline || !preview.Inline {
		t.Errorf("disposition flags wrong: download=%v preview=%v", download.Inline, preview.Inline)
	}
	if !bytes.Equal(download.Data, preview.Data) {
		t.Error("modes must render identical content")
	}
}

func TestGenerateZeroItems(t *testing.T) {
	doc, err := Generate(sampleInvoice(0), billing.DefaultSettings(), ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
	if pageCount(doc.Data) != 1 {
		t.Errorf("pages = %d, want 1", pageCount(doc.Data))
	}
}

func TestGeneratePaginatesLongTables(t *testing.T) {
	doc, err := Generate(sampleInvoice(40), billing.DefaultSettings(), ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	if pageCount(doc.Data) < 2 {
		t.Errorf("pages = %d, want at least 2 for 40 rows", pageCount(doc.Data))
	}
}

func TestGenerateBadSignatureDegrades(t *testing.T) {
	inv := sampleInvoice(1)
	plain := billing.DefaultSettings()

	broken := plain
	broken.SignatureImage = "!!! not base64 !!!"

	without, err := Generate(inv, plain, ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	degraded, err := Generate(inv, broken, ModeDownload)
	if err != nil {
		t.Fatalf("bad signature must not fail rendering: %v", err)
	}
	if !bytes.Equal(without.Data, degraded.Data) {
		t.Error("undecodable signature should render exactly like no signature")
	}
}

func TestGenerateWithSignatureImage(t *testing.T) {
	inv := sampleInvoice(1)
	settings := billing.DefaultSettings()
	settings.SignatureImage = "data:image/png;base64," + tinyPNG(t)

	signed, err := Generate(inv, settings, ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	plain, err := Generate(inv, billing.DefaultSettings(), ModeDownload)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(signed.Data, plain.Data) {
		t.Error("signature image did not make it into the document")
	}
}

func TestLayoutFooterTracksTermsLength(t *testing.T) {
	short := layoutFooter(100, 2)
	long := layoutFooter(100, 10)

	if long.bankY <= short.bankY {
		t.Errorf("bank block did not move down: %f vs %f", long.bankY, short.bankY)
	}
	wantShift := 8 * termsLineH
	if got := long.bankY - short.bankY; got != wantShift {
		t.Errorf("bank shift = %f, want %f", got, wantShift)
	}

	if short.bankY <= short.termsY+2*termsLineH {
		t.Errorf("bank details overlap the terms text: bankY %f", short.bankY)
	}
	if long.bankY <= long.termsY+10*termsLineH {
		t.Errorf("bank details overlap the terms text: bankY %f", long.bankY)
	}
}

func TestDecodeSignature(t *testing.T) {
	valid := tinyPNG(t)

	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"empty", "", false},
		{"garbage", "????", false},
		{"base64 but not png", base64.StdEncoding.EncodeToString([]byte("hello")), false},
		{"bare base64 png", valid, true},
		{"data uri", "data:image/png;base64," + valid, true},
		{"data uri without comma", "data:image/png;base64", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := decodeSignature(tt.in); ok != tt.ok {
				t.Errorf("decodeSignature(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
		})
	}
}
