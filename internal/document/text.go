package document

const (
	accentColor    = "2E74B5"
	mutedColor     = "777777"
	logoColor      = "989898"
	tableShading   = "EEF0F2"
	tableBorder    = "AAAAAA"
	bulletIndent   = 360
	dateLayout     = "2006-01-02"
	headingSize    = 32
	subheadingSize = 28
)

const (
	preparedFor     = "Prepared for: Prospective Investor/Acquirer"
	logoPlaceholder = "(Company Logo Here)"

	disclaimerHeading = "Disclaimer"
	disclaimerText    = "This document is confidential and has been prepared solely for informational purposes. It does not constitute an offer or solicitation. All information contained herein is subject to verification. Recipients should conduct their own due diligence and consult professional advisors."

	contentsHeading = "Table of Contents"

	executiveSummaryHeading = "Executive Summary"
	highlightsLead          = "Key highlights include:"

	companyOverviewHeading = "Company Overview"

	keyConsiderationsHeading = "Key Considerations"

	financialsHeading = "Financial Information"
	financialsIntro   = "This section would typically contain detailed financial information including historical performance, projections, and key financial metrics relevant to the business and industry."
	financialsLead    = "For the purposes of this template, this section is presented as a placeholder. In a complete document, you would include:"

	conclusionHeading = "Conclusion"
	contactLead       = "For further information, please contact:"
)

var contentsLines = []string{
	"Executive Summary........................3",
	"Company Overview......................4",
	"Industry Analysis.........................5",
	"Industry-Specific Content.............6",
	"Financial Information..................7",
}

var financialBullets = []string{
	"• Income Statements (3-5 years historical and projections)",
	"• Balance Sheets",
	"• Cash Flow Statements",
	"• Key Performance Indicators specific to the industry",
}
