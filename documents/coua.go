package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
)

// CouaData 为基金份额确认函（Confirmation of Unit Allocation）的字段。
type CouaData struct {
	Date             string `yaml:"date" json:"date"`
	InvestorID       string `yaml:"investorId" json:"investorId"`
	RegNumber        string `yaml:"regNumber" json:"regNumber"`
	UnitAllocationNo string `yaml:"unitAllocationNo" json:"unitAllocationNo"`

	FundName         string `yaml:"fundName" json:"fundName"`
	RegisteredUnder  string `yaml:"registeredUnder" json:"registeredUnder"`
	FundRegNo        string `yaml:"fundRegNo" json:"fundRegNo"`
	FundSponsor      string `yaml:"fundSponsor" json:"fundSponsor"`
	FundAssetManager string `yaml:"fundAssetManager" json:"fundAssetManager"`
	FundTrustee      string `yaml:"fundTrustee" json:"fundTrustee"`
	FundCustodian    string `yaml:"fundCustodian" json:"fundCustodian"`

	InvestorName         string `yaml:"investorName" json:"investorName"`
	InvestorNID          string `yaml:"investorNid" json:"investorNid"`
	InvestorFatherName   string `yaml:"investorFatherName" json:"investorFatherName"`
	NumberOfUnits        string `yaml:"numberOfUnits" json:"numberOfUnits"`
	AverageBuyPrice      string `yaml:"averageBuyPrice" json:"averageBuyPrice"`
	TotalInvestmentValue string `yaml:"totalInvestmentValue" json:"totalInvestmentValue"`

	ContactNumber string `yaml:"contactNumber" json:"contactNumber"`
	ContactEmail  string `yaml:"contactEmail" json:"contactEmail"`
}

func (d CouaData) withDefaults() CouaData {
	d.RegisteredUnder = orDefault(d.RegisteredUnder, "Bangladesh Securities and Exchange Commission (Mutual Fund) Rules, 2001")
	d.ContactNumber = orDefault(d.ContactNumber, "+88 09678 666 888")
	d.ContactEmail = orDefault(d.ContactEmail, "info@shanta-aml.com")
	return d
}

const (
	couaSize   = 10.5
	couaMargin = 45
	couaNote   = 7.5
)

// CouaLetter 生成单页份额确认函。
func (s *Service) CouaLetter(ctx context.Context, data CouaData) ([]byte, error) {
	start := time.Now()
	d := data.withDefaults()
	ss, err := s.begin(renderer.Meta{
		Title:    "Confirmation of Unit Allocation",
		Subject:  d.FundName,
		Keywords: []string{"coua", d.UnitAllocationNo},
	})
	if err != nil {
		return nil, err
	}
	page, font, bold := ss.page, ss.font, ss.bold
	textWidth := page.Width() - 2*couaMargin

	if err := s.logo(ctx, ss, 43.67, 765.92, 142, 36); err != nil {
		return nil, err
	}

	// 右上角：标签左对齐于 x=300，值右对齐于 x=556
	refs := [][2]string{
		{"Date:", d.Date},
		{"Investor ID No.:", d.InvestorID},
		{"Registration Number:", d.RegNumber},
		{"Unit Allocation No.:", d.UnitAllocationNo},
	}
	for i, ref := range refs {
		y := 784 - float64(i)*12
		err := steps(
			func() error {
				return layout.PlaceText(page, bold, layout.TextRequest{Text: ref[0], X: 300, Y: y, Size: couaSize})
			},
			func() error {
				return layout.PlaceText(page, font, layout.TextRequest{
					Text: ref[1], X: 556, Y: y, Size: couaSize, XAlign: layout.AlignRight,
				})
			},
		)
		if err != nil {
			return nil, err
		}
	}

	err = steps(
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{Text: d.FundName, Y: 706, Size: 22, XAlign: layout.AlignCenter})
		},
		func() error {
			return layout.PlaceText(page, font, layout.TextRequest{
				Text: "Registered under the " + d.RegisteredUnder, Y: 665, Size: couaSize, XAlign: layout.AlignCenter,
			})
		},
	)
	if err != nil {
		return nil, err
	}

	parties := [][2]string{
		{"Registration No.:", d.FundRegNo},
		{"Sponsor:", d.FundSponsor},
		{"Asset Manager:", d.FundAssetManager},
		{"Trustee:", d.FundTrustee},
		{"Custodian:", d.FundCustodian},
	}
	for i, p := range parties {
		err := layout.PlaceLabelValue(page, font, bold, layout.LabelValueRequest{
			Label: p[0], Value: p[1],
			Y:         665 - float64(i+1)*14.5,
			LabelSize: couaSize,
			ValueSize: couaSize,
			Gap:       10,
			XAlign:    layout.AlignCenter,
		})
		if err != nil {
			return nil, err
		}
	}

	err = steps(
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{
				Text: "CONFIRMATION OF UNIT ALLOCATION", Y: 554, Size: 16, XAlign: layout.AlignCenter,
			})
		},
		func() error {
			return layout.PlaceParagraph(page, font, layout.ParagraphRequest{
				Text: fmt.Sprintf("This is to certify that the following person is a registered unit-holder of %s "+
					"and has been allocated units of the fund issued by Shanta Asset Management Limited under the authority "+
					"provided in the trust deed of %s. Following are the details of the allotment as on %s:",
					d.FundName, d.FundName, d.Date),
				X: couaMargin, Y: 522, MaxWidth: textWidth, Size: couaSize, Align: layout.AlignJustify,
			})
		},
	)
	if err != nil {
		return nil, err
	}

	style := layout.DefaultTableStyle()
	style.BoldFont = bold
	row := func(label, value string) layout.Row {
		return layout.Row{Cells: []layout.Cell{{Text: label, Bold: true}, {Text: value}}}
	}
	_, err = layout.DrawTable(page, font, layout.Table{
		X: couaMargin, Y: 460, ColumnWidths: []float64{200, 300}, Style: &style,
		Rows: []layout.Row{
			row("Investor's Name:", d.InvestorName),
			row("Investor NID:", d.InvestorNID),
			row("Father's Name:", d.InvestorFatherName),
			row("Number of Units:", d.NumberOfUnits),
			row("Average Buy Price (BDT):", d.AverageBuyPrice),
			row("Total Investment Value:", d.TotalInvestmentValue),
		},
	})
	if err != nil {
		return nil, err
	}

	err = steps(
		func() error {
			return layout.PlaceText(page, bold, layout.TextRequest{Text: "Note:", X: couaMargin, Y: 310, Size: couaNote})
		},
		func() error {
			return layout.PlaceParagraph(page, font, layout.ParagraphRequest{
				Text:     disclaimer(d.FundName),
				X:        couaMargin,
				Y:        295,
				MaxWidth: textWidth,
				Size:     couaNote,
				Align:    layout.AlignJustify,
			})
		},
		func() error { return contactLine(page, font, bold, d, textWidth) },
	)
	if err != nil {
		return nil, err
	}
	return s.finish(ss, "coua", start)
}

func disclaimer(fund string) string {
	return fmt.Sprintf("This Confirmation is a confidential and legal document of subscribing %s. "+
		"This Confirmation singly would provide legal right to unit holding for the investors. "+
		"Unauthorized use, disclosure or copying of this document is unlawful and strictly prohibited, "+
		"and shall be treated with appropriate measures of law. "+
		"This Confirmation will be void as and when any new \"Confirmation of Unit Allocation\" is issued to the same investor. "+
		"As this is a system-generated certificate, it does not require any authorized signature.", fund)
}

// contactLine 以常规与粗体交替的片段拼出联系方式；结尾片段超出 maxWidth 时换到下一行行首。
func contactLine(page layout.Page, font, bold layout.Font, d CouaData, maxWidth float64) error {
	const y = 250
	runs := []struct {
		text string
		font layout.Font
	}{
		{"For any query or changes to your personal details, please contact us at for any assistance ", font},
		{d.ContactNumber, bold},
		{" or send email to ", font},
		{d.ContactEmail, bold},
		{" at", font},
	}
	x := float64(couaMargin)
	for _, r := range runs {
		if err := layout.PlaceText(page, r.font, layout.TextRequest{Text: r.text, X: x, Y: y, Size: couaNote}); err != nil {
			return err
		}
		x += layout.MeasureText(r.font, r.text, couaNote)
	}

	const tail = "any time."
	tailY := float64(y)
	if x+layout.MeasureText(font, tail, couaNote) > maxWidth {
		x, tailY = couaMargin, y-couaNote*1.2
	} else {
		x += layout.MeasureText(font, " ", couaNote)
	}
	return layout.PlaceText(page, font, layout.TextRequest{Text: tail, X: x, Y: tailY, Size: couaNote})
}
