package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
)

// CertificateData 为投资证明的字段。空的基金信息字段取默认值。
type CertificateData struct {
	FundName        string `yaml:"fundName" json:"fundName"`
	RegisteredUnder string `yaml:"registeredUnder" json:"registeredUnder"`
	ManagedBy       string `yaml:"managedBy" json:"managedBy"`
	Address         string `yaml:"address" json:"address"`
	Phone           string `yaml:"phone" json:"phone"`
	Fax             string `yaml:"fax" json:"fax"`

	Date            string `yaml:"date" json:"date"`
	RegistrationNo  string `yaml:"registrationNo" json:"registrationNo"`
	BOAccountNo     string `yaml:"boAccountNo" json:"boAccountNo"`
	Name            string `yaml:"name" json:"name"`
	InvestorAddress string `yaml:"investorAddress" json:"investorAddress"`
	StartDate       string `yaml:"startDate" json:"startDate"`
	EndDate         string `yaml:"endDate" json:"endDate"`

	OpeningBalance        string `yaml:"openingBalance" json:"openingBalance"`
	ClosingBalance        string `yaml:"closingBalance" json:"closingBalance"`
	InvestmentDuringYear  string `yaml:"investmentDuringYear" json:"investmentDuringYear"`
	RedemptionDuringYear  string `yaml:"redemptionDuringYear" json:"redemptionDuringYear"`
	CostValueSecurities   string `yaml:"costValueSecurities" json:"costValueSecurities"`
	MarketValueSecurities string `yaml:"marketValueSecurities" json:"marketValueSecurities"`
	RealizedGainLoss      string `yaml:"realizedGainLoss" json:"realizedGainLoss"`
	UnrealizedGainLoss    string `yaml:"unrealizedGainLoss" json:"unrealizedGainLoss"`
	DividendIncome        string `yaml:"dividendIncome" json:"dividendIncome"`
	TaxDeductedDividend   string `yaml:"taxDeductedDividend" json:"taxDeductedDividend"`
}

const (
	defaultManagedBy = "Shanta Asset Management Limited"
	defaultPhone     = "+88-02-48810551-2"
	defaultFax       = "+88-02-48810553"
)

func (d CertificateData) withDefaults() CertificateData {
	d.RegisteredUnder = orDefault(d.RegisteredUnder, "Bangladesh Securities & Exchange Commission (Mutual Fund) Rules, 2001")
	d.ManagedBy = orDefault(d.ManagedBy, defaultManagedBy)
	d.Address = orDefault(d.Address, "The Glass House (Level 13), S.E (B) - 2, 38 GULSHAN AVENUE, DHAKA 1212")
	d.Phone = orDefault(d.Phone, defaultPhone)
	d.Fax = orDefault(d.Fax, defaultFax)
	return d
}

// 投资证明的纵向间距：页眉与内容之间逐级累加的偏移。
const (
	certVerticalOffset = 7
	certContentGap     = 15
	certHeaderGap      = 18
	certSectionGap     = 36
	// 正文区整体相对页眉下移的距离
	certBodyShift = certVerticalOffset + certContentGap + certHeaderGap + certSectionGap - 12
)

// InvestmentCertificate 生成单页投资证明。
func (s *Service) InvestmentCertificate(ctx context.Context, data CertificateData) ([]byte, error) {
	start := time.Now()
	d := data.withDefaults()
	ss, err := s.begin(renderer.Meta{
		Title:    "Investment Certificate",
		Subject:  d.FundName,
		Keywords: []string{"certificate", d.RegistrationNo},
	})
	if err != nil {
		return nil, err
	}
	page, font, bold := ss.page, ss.font, ss.bold
	pageWidth := page.Width()

	// 页眉：左侧 logo，右侧基金信息在 [198, 页宽-50] 内居中
	const infoCenterY = 764
	if err := s.logo(ctx, ss, 45, infoCenterY-21, 143, 42); err != nil {
		return nil, err
	}
	const band = 198
	err = steps(
		func() error { return bandCentered(page, bold, d.FundName, 18, band, 793) },
		func() error {
			return bandCentered(page, font, "Registered under the "+d.RegisteredUnder, 8, band, 775)
		},
		func() error { return bandCentered(page, bold, "Managed By "+d.ManagedBy, 10, band, 761) },
		func() error { return bandCentered(page, font, "Address: "+d.Address, 8, band, 747) },
		func() error {
			return bandCentered(page, font, fmt.Sprintf("Phone: %s, Fax: %s", d.Phone, d.Fax), 8, band, 735)
		},
		func() error {
			y := 730.0 - certVerticalOffset - certHeaderGap
			return page.DrawLine(layout.LineOptions{StartX: 45, StartY: y, EndX: 550, EndY: y, Thickness: 6, Color: Gold})
		},
	)
	if err != nil {
		return nil, err
	}

	// 投资人信息框
	boxY := 710.0 - certVerticalOffset - certContentGap - certHeaderGap + certSectionGap
	const boxGap = 24
	err = page.DrawRectangle(layout.RectOptions{
		X: 50, Y: boxY - 100 - boxGap, Width: 495, Height: 100,
		BorderColor: Gold, BorderWidth: 2,
	})
	if err != nil {
		return nil, err
	}
	lines := []string{
		"Date: " + d.Date,
		"Registration No.: " + d.RegistrationNo,
		"BO Account No.: " + d.BOAccountNo,
		"Name: " + d.Name,
		"Address: " + d.InvestorAddress,
	}
	for i, line := range lines {
		y := boxY - 20 - boxGap - float64(i)*16
		if err := layout.PlaceText(page, bold, layout.TextRequest{Text: line, X: 60, Y: y, Size: 10}); err != nil {
			return nil, err
		}
	}

	// 标题框
	const title = "Investment Certificate"
	const titleSize = 10.4
	titleY := 595.0 - certBodyShift + 12
	titleTextWidth := layout.MeasureText(bold, title, titleSize)
	titleBoxWidth := (titleTextWidth + 40) * 1.5
	const titleBoxHeight = 33.6
	err = steps(
		func() error {
			return page.DrawRectangle(layout.RectOptions{
				X: pageWidth/2 - titleBoxWidth/2, Y: titleY - titleBoxHeight/2,
				Width: titleBoxWidth, Height: titleBoxHeight,
				BorderColor: Gold, BorderWidth: 2,
			})
		},
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{
				Text: title, X: (pageWidth - titleTextWidth) / 2, Y: titleY - titleSize/2, Size: titleSize,
			})
		},
		func() error {
			return layout.PlaceParagraph(page, font, layout.ParagraphRequest{
				Text: fmt.Sprintf("This is to certify that %s is a registered unit-holder of %s. "+
					"His/Her detailed information is provided below:", d.Name, d.FundName),
				X: 50, Y: 550 - certBodyShift, MaxWidth: 500, Size: 10, Align: layout.AlignLeft,
			})
		},
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{
				Text: fmt.Sprintf("Investment Period: %s to %s", d.StartDate, d.EndDate),
				X:    50, Y: 505 - certBodyShift, Size: 10,
			})
		},
	)
	if err != nil {
		return nil, err
	}

	style := layout.DefaultTableStyle()
	style.RowHeight = 26.4
	style.FontSize = 10.8
	style.Padding = 5
	style.BoldFont = bold
	pair := func(a, b string) layout.Row {
		return layout.Row{Cells: []layout.Cell{{Text: a, Bold: true}, {Text: b, Bold: true}}}
	}
	_, err = layout.DrawTable(page, font, layout.Table{
		X: 50, Y: 485 - certBodyShift, ColumnWidths: []float64{270, 225}, Style: &style,
		Rows: []layout.Row{
			pair("Opening Investment Balance: "+d.OpeningBalance, "Closing Investment Balance: "+d.ClosingBalance),
			pair("Investment During this Year: "+d.InvestmentDuringYear, "Redemption During this Year: "+d.RedemptionDuringYear),
			pair("Cost Value of Securities: "+d.CostValueSecurities, "Market value of Securities: "+d.MarketValueSecurities),
			pair("Realized Gain/ Loss: "+d.RealizedGainLoss, "Unrealized Gain/ Loss: "+d.UnrealizedGainLoss),
			pair("Dividend Income: "+d.DividendIncome, "Tax Deducted on Dividend: "+d.TaxDeductedDividend),
		},
	})
	if err != nil {
		return nil, err
	}

	// 脚注与签名
	signY := 330.0 - certBodyShift - 10
	err = steps(
		func() error {
			return layout.PlaceText(page, font, layout.TextRequest{
				Text: "(All figures in Bangladeshi Taka)", X: 50, Y: 355 - certBodyShift - 10, Size: 7.2,
			})
		},
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{Text: "For & on behalf of", X: 50, Y: signY, Size: 8})
		},
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{Text: d.FundName, X: 50, Y: signY - 12, Size: 8})
		},
		func() error {
			return layout.PlaceText(page, font, layout.TextRequest{
				Text: "___________________", X: 50, Y: 220 - certBodyShift - 10, Size: 8,
			})
		},
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{
				Text: "Authorized Signature", X: 50, Y: 220 - certBodyShift - 10 - 15, Size: 8,
			})
		},
	)
	if err != nil {
		return nil, err
	}
	return s.finish(ss, "certificate", start)
}
