package catalog

import "github.com/jonathan/deal-docs/internal/types"

// builtin is the content shipped with the binary.
var builtin = map[types.Industry]map[types.DocumentType][]string{
	types.IndustryManagedITServices: {
		types.DocumentInformationMemorandum: {
			"Service Level Agreements (SLAs): Detail typical SLA commitments, uptime guarantees, and support response times.",
			"Recurring Revenue Models: Emphasize the stability and predictability of MRR/ARR from managed service contracts.",
			"Technology Stack & Vendor Partnerships: Describe key technologies utilized (e.g., RMM, PSA tools) and strategic partnerships (e.g., Microsoft, AWS, cybersecurity vendors).",
			"Cybersecurity Focus: Highlight expertise in cybersecurity services, compliance (e.g., GDPR, HIPAA if applicable), and data protection measures.",
			"Client Onboarding & Management: Outline the process for onboarding new clients and managing ongoing service delivery.",
		},
		types.DocumentSalesProspectus: {
			"Value Proposition for MSPs: Focus on how the acquisition/investment enhances service offerings, expands customer base, or improves operational efficiency in the MSP space.",
			"Scalability of Services: Highlight the potential to scale managed services across a broader client portfolio.",
			"Cross-selling Opportunities: Identify opportunities to cross-sell additional IT services (e.g., cloud solutions, cybersecurity, VoIP) to the existing client base.",
		},
		types.DocumentBusinessOverview: {
			"Core MSP Offerings: Briefly list key managed services (e.g., network monitoring, helpdesk support, cloud management, data backup and recovery).",
			"Target Client Verticals (if any): Mention specific industries the MSP specializes in serving (e.g., healthcare, finance, legal).",
		},
		types.DocumentInvestmentThesis: {
			"Growth Drivers in MSP Market: Discuss factors like increasing IT complexity, cybersecurity threats, and cloud adoption driving demand for MSPs.",
			"Competitive Moat for MSPs: Analyze factors such as customer stickiness, proprietary processes, or specialized expertise.",
			"Valuation Multiples for MSPs: Reference typical valuation metrics in the MSP sector (e.g., EV/EBITDA, EV/ARR).",
		},
	},
	types.IndustryEngineering: {
		types.DocumentInformationMemorandum: {
			"Project Portfolio & Case Studies: Showcase key projects completed, highlighting complexity, scale, and client satisfaction.",
			"Certifications & Compliance: Detail relevant industry certifications and adherence to regulatory and safety standards.",
			"Key Personnel & Expertise: Emphasize the qualifications and experience of senior engineers and project managers.",
			"Technology & Software Utilized: Describe specialized engineering software and technologies employed.",
			"Risk Management & Quality Assurance: Outline processes for project risk management and quality control.",
		},
		types.DocumentSalesProspectus: {
			"Strategic Fit for Engineering Firms: Focus on how the acquisition/investment provides access to new markets and specialized engineering talent.",
			"Intellectual Property (if any): Highlight any patents, proprietary designs, or unique engineering methodologies.",
			"Backlog & Pipeline: Discuss the current project backlog and potential future projects in the pipeline.",
		},
		types.DocumentBusinessOverview: {
			"Core Engineering Disciplines: Briefly list primary areas of engineering expertise (e.g., structural, product design, process engineering).",
			"Key Client Sectors: Mention primary industries served (e.g., construction, manufacturing, aerospace, energy).",
		},
		types.DocumentInvestmentThesis: {
			"Growth Drivers in Engineering Sector: Discuss factors like infrastructure spending, technological innovation, and demand for specialized engineering solutions.",
			"Competitive Advantages in Engineering: Analyze factors such as reputation, technical expertise, client relationships, or innovative solutions.",
			"Valuation Considerations for Engineering Firms: Reference typical valuation metrics for the engineering industry.",
		},
	},
}
