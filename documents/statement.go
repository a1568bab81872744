package documents

import (
	"context"
	"strings"
	"time"

	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
)

// StatementData 为投资组合对账单的字段。
type StatementData struct {
	FundName        string `yaml:"fundName" json:"fundName"`
	RegisteredUnder string `yaml:"registeredUnder" json:"registeredUnder"`
	ManagedBy       string `yaml:"managedBy" json:"managedBy"`
	Address         string `yaml:"address" json:"address"`
	Phone           string `yaml:"phone" json:"phone"`
	Fax             string `yaml:"fax" json:"fax"`

	StatementDate  string `yaml:"statementDate" json:"statementDate"`
	CurrentNavDate string `yaml:"currentNavDate" json:"currentNavDate"`
	InvestorName   string `yaml:"investorName" json:"investorName"`
	RegistrationNo string `yaml:"registrationNo" json:"registrationNo"`

	FundDeposit           string `yaml:"fundDeposit" json:"fundDeposit"`
	DividendReinvested    string `yaml:"dividendReinvested" json:"dividendReinvested"`
	TotalDeposit          string `yaml:"totalDeposit" json:"totalDeposit"`
	TotalWithdrawal       string `yaml:"totalWithdrawal" json:"totalWithdrawal"`
	UnitsPurchased        string `yaml:"unitsPurchased" json:"unitsPurchased"`
	CIPUnits              string `yaml:"cipUnits" json:"cipUnits"`
	UnitsSurrender        string `yaml:"unitsSurrender" json:"unitsSurrender"`
	UnitsHeld             string `yaml:"unitsHeld" json:"unitsHeld"`
	AverageCostPerUnit    string `yaml:"averageCostPerUnit" json:"averageCostPerUnit"`
	InvestmentAtCost      string `yaml:"investmentAtCost" json:"investmentAtCost"`
	CurrentNav            string `yaml:"currentNav" json:"currentNav"`
	MarketValue           string `yaml:"marketValue" json:"marketValue"`
	CapitalGainRealized   string `yaml:"capitalGainRealized" json:"capitalGainRealized"`
	CapitalGainUnrealized string `yaml:"capitalGainUnrealized" json:"capitalGainUnrealized"`
	TotalCapitalGain      string `yaml:"totalCapitalGain" json:"totalCapitalGain"`
	DividendIncome        string `yaml:"dividendIncome" json:"dividendIncome"`
	DividendReceivable    string `yaml:"dividendReceivable" json:"dividendReceivable"`
	TotalReturn           string `yaml:"totalReturn" json:"totalReturn"`
	CashBalance           string `yaml:"cashBalance" json:"cashBalance"`
}

func (d StatementData) withDefaults() StatementData {
	d.RegisteredUnder = orDefault(d.RegisteredUnder, "Securities & Exchange Commission (Mutual Fund) Rules, 2001")
	d.ManagedBy = orDefault(d.ManagedBy, defaultManagedBy)
	d.Address = orDefault(d.Address, "The Glass House (Level 13), S.E (B) - 2, 38 Gulshan Avenue, Gulshan - 1, Dhaka 1212")
	d.Phone = orDefault(d.Phone, defaultPhone)
	d.Fax = orDefault(d.Fax, defaultFax)
	return d
}

// rows 返回对账单表格的 19 行；市值一行整行加粗。
func (d StatementData) rows() []layout.Row {
	row := func(label, value string) layout.Row {
		return layout.Row{Cells: []layout.Cell{{Text: label}, {Text: value}}}
	}
	marketValue := layout.Row{Cells: []layout.Cell{
		{Text: "Market Value of Investment", Bold: true},
		{Text: d.MarketValue, Bold: true},
	}}
	return []layout.Row{
		row("Fund Deposit", d.FundDeposit),
		row("Dividend Reinvested", d.DividendReinvested),
		row("Total Deposit", d.TotalDeposit),
		row("Total Withdrawal", d.TotalWithdrawal),
		row("Units Purchased (Nos)", d.UnitsPurchased),
		row("CIP Units (Nos)", d.CIPUnits),
		row("Units Surrender (Nos)", d.UnitsSurrender),
		row("Units Held (Nos)", d.UnitsHeld),
		row("Average Cost Price/Unit", d.AverageCostPerUnit),
		row("Investment at Cost", d.InvestmentAtCost),
		row("Current NAV (As On "+d.CurrentNavDate+")", d.CurrentNav),
		marketValue,
		row("Capital Gain (Realized) (a)", d.CapitalGainRealized),
		row("Capital Gain (Unrealized) (b)", d.CapitalGainUnrealized),
		row("Total Capital Gain (a+b)", d.TotalCapitalGain),
		row("Dividend Income (c)", d.DividendIncome),
		row("Dividend Receivable (d)", d.DividendReceivable),
		row("Total Return (a+b+c+d)", d.TotalReturn),
		row("Cash Balance", d.CashBalance),
	}
}

// PortfolioStatement 生成单页投资组合对账单。
func (s *Service) PortfolioStatement(ctx context.Context, data StatementData) ([]byte, error) {
	start := time.Now()
	d := data.withDefaults()
	ss, err := s.begin(renderer.Meta{
		Title:    "Investment Statement",
		Subject:  d.FundName,
		Keywords: []string{"statement", d.RegistrationNo},
	})
	if err != nil {
		return nil, err
	}
	page, font, bold := ss.page, ss.font, ss.bold

	if err := s.logo(ctx, ss, 50, 765, 120, 35); err != nil {
		return nil, err
	}
	const band = 180
	err = steps(
		func() error { return bandCentered(page, bold, strings.ToUpper(d.FundName), 16, band, 785) },
		func() error { return bandCentered(page, font, "Registered under the "+d.RegisteredUnder, 8.5, band, 768) },
		func() error { return bandCentered(page, bold, "Managed by "+d.ManagedBy, 9, band, 755) },
		func() error { return bandCentered(page, font, "Address: "+d.Address, 7.5, band, 742) },
		func() error { return bandCentered(page, font, "Phone: "+d.Phone+", Fax: "+d.Fax, 7.5, band, 730) },
		func() error {
			return page.DrawLine(layout.LineOptions{StartX: 50, StartY: 720, EndX: 545, EndY: 720, Thickness: 4.5, Color: Gold})
		},
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{
				Text: "Investment Statement", Y: 690, Size: 14, XAlign: layout.AlignCenter,
			})
		},
		func() error {
			return layout.PlaceText(page, font, layout.TextRequest{
				Text: "(As On " + d.StatementDate + ")", Y: 675, Size: 9, XAlign: layout.AlignCenter,
			})
		},
		func() error { return investorLine(page, bold, "Investor's Name : ", d.InvestorName, 645) },
		func() error { return investorLine(page, bold, "Registration No : ", d.RegistrationNo, 630) },
	)
	if err != nil {
		return nil, err
	}

	style := layout.DefaultTableStyle()
	style.FontSize = 9
	style.Padding = 5
	style.BoldFont = bold
	bottom, err := layout.DrawTable(page, font, layout.Table{
		X: 50, Y: 600, ColumnWidths: []float64{395, 100}, Style: &style, Rows: d.rows(),
	})
	if err != nil {
		return nil, err
	}

	// 表格下方 25pt 的脚注：红色星号后接说明
	footerY := bottom - 25
	star := layout.MeasureText(bold, "*", 8)
	err = steps(
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{Text: "*", X: 50, Y: footerY, Size: 8, Color: layout.Red})
		},
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{
				Text: " All amounts are in BDT, otherwise mentioned.", X: 50 + star, Y: footerY, Size: 8,
			})
		},
	)
	if err != nil {
		return nil, err
	}
	return s.finish(ss, "statement", start)
}

// investorLine 绘制“标签 值”，值紧跟在标签之后。
func investorLine(page layout.Page, bold layout.Font, label, value string, y float64) error {
	if err := layout.PlaceText(page, bold, layout.TextRequest{Text: label, X: 50, Y: y, Size: 9}); err != nil {
		return err
	}
	x := 50 + layout.MeasureText(bold, label, 9)
	return layout.PlaceText(page, bold, layout.TextRequest{Text: value, X: x, Y: y, Size: 9})
}
