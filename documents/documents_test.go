package documents

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NafisRayan/pdfform/asset"
	"github.com/NafisRayan/pdfform/internal/pdfcheck"
	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
)

// halfFont 的每个字符宽 size/2。
type halfFont struct{ name string }

func (f halfFont) Name() string { return f.name }
func (f halfFont) WidthOfTextAtSize(text string, size float64) float64 {
	return float64(len([]rune(text))) * size / 2
}

type drawnText struct {
	text string
	opts layout.TextOptions
}

type recordPage struct {
	texts  []drawnText
	lines  []layout.LineOptions
	rects  []layout.RectOptions
	images []layout.ImageOptions
}

func (p *recordPage) Width() float64  { return layout.A4.Width }
func (p *recordPage) Height() float64 { return layout.A4.Height }
func (p *recordPage) DrawText(text string, o layout.TextOptions) error {
	p.texts = append(p.texts, drawnText{text, o})
	return nil
}
func (p *recordPage) DrawLine(o layout.LineOptions) error { p.lines = append(p.lines, o); return nil }
func (p *recordPage) DrawRectangle(o layout.RectOptions) error {
	p.rects = append(p.rects, o)
	return nil
}
func (p *recordPage) DrawImage(_ layout.Image, o layout.ImageOptions) error {
	p.images = append(p.images, o)
	return nil
}

// find 返回第一次绘制 text 的参数。
func (p *recordPage) find(t *testing.T, text string) layout.TextOptions {
	t.Helper()
	for _, d := range p.texts {
		if d.text == text {
			return d.opts
		}
	}
	t.Fatalf("未绘制 %q", text)
	return layout.TextOptions{}
}

// strings 按绘制顺序返回所有文字。
func (p *recordPage) strings() []string {
	out := make([]string, 0, len(p.texts))
	for _, d := range p.texts {
		out = append(out, d.text)
	}
	return out
}

type fakeImage struct{}

func (fakeImage) Size() (int, int) { return 1, 1 }

type recordRenderer struct {
	meta  renderer.Meta
	page  *recordPage
	saved bool
}

func (r *recordRenderer) EmbedJPEG([]byte) (layout.Image, error) { return fakeImage{}, nil }
func (r *recordRenderer) EmbedPNG([]byte) (layout.Image, error)  { return fakeImage{}, nil }
func (r *recordRenderer) AddPage(float64, float64) layout.Page {
	r.page = &recordPage{}
	return r.page
}
func (r *recordRenderer) LoadFont(name, _ string) (layout.Font, error) { return halfFont{name}, nil }
func (r *recordRenderer) SetMeta(m renderer.Meta)                     { r.meta = m }
func (r *recordRenderer) Save() ([]byte, error) {
	r.saved = true
	return []byte("%PDF-1.7"), nil
}

func recorded(logo string) (*Service, *recordRenderer) {
	r := &recordRenderer{}
	embedder := layout.NewEmbedder(asset.ResolverFunc(func(_ context.Context, src string) (*asset.Source, error) {
		return &asset.Source{Data: []byte("png"), Format: asset.FormatPNG, Origin: src}, nil
	}), nil)
	return &Service{
		NewRenderer: func() renderer.Renderer { return r },
		Embedder:    embedder,
		LogoSource:  logo,
	}, r
}

func sampleCertificate() CertificateData {
	return CertificateData{
		FundName:        "Shanta First Income Unit Fund",
		Date:            "30 June 2025",
		RegistrationNo:  "SFIUF-000123",
		BOAccountNo:     "1201950000000001",
		Name:            "Md. Samiul Alim",
		InvestorAddress: "House 10, Road 5, Dhanmondi, Dhaka",
		StartDate:       "01 July 2024",
		EndDate:         "30 June 2025",
		OpeningBalance:  "100,000.00",
		ClosingBalance:  "112,500.00",
		DividendIncome:  "5,000.00",
	}
}

func TestInvestmentCertificateLayout(t *testing.T) {
	s, r := recorded("logo.png")
	out, err := s.InvestmentCertificate(context.Background(), sampleCertificate())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(out))
	assert.Equal(t, "Investment Certificate", r.meta.Title)
	assert.Equal(t, "pdfform", r.meta.Creator)

	p := r.page
	require.Len(t, p.images, 1)
	assert.Equal(t, layout.ImageOptions{X: 45, Y: 743, Width: 143, Height: 42}, p.images[0])

	fund := sampleCertificate().FundName
	title := p.find(t, fund)
	assert.Equal(t, "Bold", title.Font.Name())
	assert.Equal(t, 793.0, title.Y)
	w := float64(len(fund)) * 18 / 2
	assert.InDelta(t, 198+(layout.A4.Width-198-50-w)/2, title.X, 1e-9)

	require.Len(t, p.lines, 1+5+4)
	assert.Equal(t, layout.LineOptions{StartX: 45, StartY: 705, EndX: 550, EndY: 705, Thickness: 6, Color: Gold}, p.lines[0])

	// 信息框、标题框与五行表格
	require.Len(t, p.rects, 2+5)
	assert.Equal(t, 582.0, p.rects[0].Y)
	assert.Equal(t, Gold, p.rects[0].BorderColor)
	assert.InDelta(t, 543-16.8, p.rects[1].Y, 1e-9)

	assert.Equal(t, 662.0, p.find(t, "Date: 30 June 2025").Y)
	assert.Equal(t, 598.0, p.find(t, "Address: House 10, Road 5, Dhanmondi, Dhaka").Y)
	assert.Equal(t, 441.0, p.find(t, "Investment Period: 01 July 2024 to 30 June 2025").Y)
	assert.Equal(t, "Bold", p.find(t, "Opening Investment Balance: 100,000.00").Font.Name())
	assert.InDelta(t, 421-26.4*5, p.rects[6].Y, 1e-9)
	assert.Equal(t, 281.0, p.find(t, "(All figures in Bangladeshi Taka)").Y)
	assert.Equal(t, 131.0, p.find(t, "Authorized Signature").Y)

	// 未提供的基金信息取默认值
	p.find(t, "Managed By Shanta Asset Management Limited")
	p.find(t, "Phone: +88-02-48810551-2, Fax: +88-02-48810553")
}

func TestInvestmentCertificateText(t *testing.T) {
	s, r := recorded("")
	_, err := s.InvestmentCertificate(context.Background(), sampleCertificate())
	require.NoError(t, err)

	texts := r.page.strings()
	require.GreaterOrEqual(t, len(texts), 5)
	assert.Equal(t, []string{
		"Shanta First Income Unit Fund",
		"Registered under the Bangladesh Securities & Exchange Commission (Mutual Fund) Rules, 2001",
		"Managed By Shanta Asset Management Limited",
		"Address: The Glass House (Level 13), S.E (B) - 2, 38 GULSHAN AVENUE, DHAKA 1212",
		"Phone: +88-02-48810551-2, Fax: +88-02-48810553",
	}, texts[:5])

	for _, label := range []string{
		"Opening Investment Balance: 100,000.00",
		"Closing Investment Balance: 112,500.00",
		"Investment During this Year: ",
		"Redemption During this Year: ",
		"Cost Value of Securities: ",
		"Market value of Securities: ",
		"Realized Gain/ Loss: ",
		"Unrealized Gain/ Loss: ",
		"Dividend Income: 5,000.00",
		"Tax Deducted on Dividend: ",
	} {
		assert.Contains(t, texts, label)
	}
	assert.NotContains(t, texts, "Opening Balance: 100,000.00")
}

func TestPortfolioStatementHeaderText(t *testing.T) {
	s, r := recorded("")
	_, err := s.PortfolioStatement(context.Background(), StatementData{FundName: "Shanta Amanah Shariah Fund"})
	require.NoError(t, err)

	texts := r.page.strings()
	require.GreaterOrEqual(t, len(texts), 5)
	assert.Equal(t, []string{
		"SHANTA AMANAH SHARIAH FUND",
		"Registered under the Securities & Exchange Commission (Mutual Fund) Rules, 2001",
		"Managed by Shanta Asset Management Limited",
		"Address: The Glass House (Level 13), S.E (B) - 2, 38 Gulshan Avenue, Gulshan - 1, Dhaka 1212",
		"Phone: +88-02-48810551-2, Fax: +88-02-48810553",
	}, texts[:5])
	assert.Equal(t, 768.0, r.page.find(t, texts[1]).Y)
	assert.Equal(t, 742.0, r.page.find(t, texts[3]).Y)
}

func TestPortfolioStatementLayout(t *testing.T) {
	s, r := recorded("")
	_, err := s.PortfolioStatement(context.Background(), StatementData{
		FundName:       "Shanta Amanah Shariah Fund",
		StatementDate:  "30 June 2025",
		CurrentNavDate: "26 June 2025",
		InvestorName:   "Jane Doe",
		RegistrationNo: "SASF-42",
		MarketValue:    "250,000.00",
	})
	require.NoError(t, err)

	p := r.page
	assert.Empty(t, p.images)
	assert.Equal(t, 785.0, p.find(t, "SHANTA AMANAH SHARIAH FUND").Y)

	heading := p.find(t, "Investment Statement")
	assert.InDelta(t, (layout.A4.Width-float64(len("Investment Statement"))*7)/2, heading.X, 1e-9)

	value := p.find(t, "Jane Doe")
	assert.InDelta(t, 50+float64(len("Investor's Name : "))*4.5, value.X, 1e-9)
	assert.Equal(t, 645.0, value.Y)

	require.Len(t, p.rects, 19)
	p.find(t, "Current NAV (As On 26 June 2025)")
	assert.Equal(t, "Bold", p.find(t, "Market Value of Investment").Font.Name())
	assert.Equal(t, "Bold", p.find(t, "250,000.00").Font.Name())
	assert.Equal(t, "Regular", p.find(t, "Cash Balance").Font.Name())

	star := p.find(t, "*")
	assert.Equal(t, 195.0, star.Y)
	assert.Equal(t, layout.Red, star.Color)
	note := p.find(t, " All amounts are in BDT, otherwise mentioned.")
	assert.Equal(t, 54.0, note.X)
}

func TestCouaLetterLayout(t *testing.T) {
	s, r := recorded("logo.png")
	_, err := s.CouaLetter(context.Background(), CouaData{
		Date:         "15 May 2025",
		InvestorID:   "INV-7",
		FundName:     "Shanta Asset Securitization Fund",
		FundSponsor:  "Shanta Asset Management Limited",
		InvestorName: "John Doe",
	})
	require.NoError(t, err)

	p := r.page
	require.Len(t, p.images, 1)
	assert.Equal(t, layout.ImageOptions{X: 43.67, Y: 765.92, Width: 142, Height: 36}, p.images[0])

	id := p.find(t, "INV-7")
	assert.InDelta(t, 556-float64(len("INV-7"))*couaSize/2, id.X, 1e-9)
	assert.Equal(t, 772.0, id.Y)

	sponsor := p.find(t, "Sponsor:")
	assert.Equal(t, 636.0, sponsor.Y)
	total := float64(len("Sponsor:")+len("Shanta Asset Management Limited"))*couaSize/2 + 10
	assert.InDelta(t, (layout.A4.Width-total)/2, sponsor.X, 1e-9)

	assert.Equal(t, 554.0, p.find(t, "CONFIRMATION OF UNIT ALLOCATION").Y)
	require.Len(t, p.rects, 6)
	assert.Equal(t, "Bold", p.find(t, "Investor's Name:").Font.Name())
	assert.Equal(t, "Regular", p.find(t, "John Doe").Font.Name())

	// 联系方式默认值与结尾换行
	assert.Equal(t, "Bold", p.find(t, "+88 09678 666 888").Font.Name())
	tail := p.find(t, "any time.")
	assert.Equal(t, 45.0, tail.X)
	assert.InDelta(t, 241, tail.Y, 1e-9)
}

func TestContactLineFitsOnOneLine(t *testing.T) {
	p := &recordPage{}
	d := CouaData{}.withDefaults()
	require.NoError(t, contactLine(p, halfFont{"Regular"}, halfFont{"Bold"}, d, 1000))
	tail := p.find(t, "any time.")
	assert.Equal(t, 250.0, tail.Y)
	assert.InDelta(t, 600+couaNote/2, tail.X, 1e-9)
}

func TestLogoFailureIsFatal(t *testing.T) {
	r := &recordRenderer{}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.gif"), []byte("GIF89a"), 0o644))
	s := &Service{
		NewRenderer: func() renderer.Renderer { return r },
		Embedder:    layout.NewEmbedder(asset.NewRouter(&asset.FileResolver{BaseDir: dir}), nil),
		LogoSource:  "logo.gif",
	}
	for name, gen := range map[string]func() error{
		"certificate": func() error { _, err := s.InvestmentCertificate(context.Background(), CertificateData{}); return err },
		"statement":   func() error { _, err := s.PortfolioStatement(context.Background(), StatementData{}); return err },
		"coua":        func() error { _, err := s.CouaLetter(context.Background(), CouaData{}); return err },
	} {
		t.Run(name, func(t *testing.T) {
			err := gen()
			require.Error(t, err)
			assert.Equal(t, LogoError, err.Error())
			assert.True(t, errors.Is(err, layout.ErrUnsupportedImage))
			assert.False(t, r.saved)
		})
	}
}

func writeLogo(t *testing.T, dir string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 142, G: 138, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), buf.Bytes(), 0o644))
}

func TestGeneratedPDFsAreValid(t *testing.T) {
	dir := t.TempDir()
	writeLogo(t, dir)
	s := &Service{
		Embedder:   layout.NewEmbedder(asset.NewRouter(&asset.FileResolver{BaseDir: dir}), nil),
		LogoSource: "logo.png",
	}
	ctx := context.Background()
	for name, gen := range map[string]func() ([]byte, error){
		"certificate": func() ([]byte, error) { return s.InvestmentCertificate(ctx, sampleCertificate()) },
		"statement":   func() ([]byte, error) { return s.PortfolioStatement(ctx, StatementData{FundName: "Fund"}) },
		"coua":        func() ([]byte, error) { return s.CouaLetter(ctx, CouaData{FundName: "Fund"}) },
	} {
		t.Run(name, func(t *testing.T) {
			data, err := gen()
			require.NoError(t, err)
			require.NoError(t, pdfcheck.Validate(data))
			report, err := pdfcheck.Inspect(data)
			require.NoError(t, err)
			assert.Equal(t, 1, report.Pages)
		})
	}
}
