package knowledge

import "github.com/nadim/adgm-agent/internal/types"

// SeedItems returns the built-in regulatory knowledge loaded on first
// population, before any scraped sources arrive. All seed items live in
// the incorporation collection.
func SeedItems() []types.RegulationItem {
	return []types.RegulationItem{
		{
			ID:                  "companies_reg_001",
			DocumentTitle:       "Companies Regulations 2020",
			SectionLabel:        "Registration Requirements",
			RegulationReference: "CR-2020-001",
			Category:            "incorporation",
			Content:             "Every company incorporated in ADGM must have a registered office within ADGM jurisdiction at Al Maryah Island, Abu Dhabi.",
			Keywords:            []string{"registered office", "jurisdiction", "incorporation", "ADGM"},
			SourceType:          "seed",
		},
		{
			ID:                  "companies_reg_002",
			DocumentTitle:       "Companies Regulations 2020",
			SectionLabel:        "Share Capital Requirements",
			RegulationReference: "CR-2020-015",
			Category:            "capital",
			Content:             "Private companies require minimum authorized share capital of AED 150,000. Public companies require minimum AED 2,000,000.",
			Keywords:            []string{"share capital", "minimum capital", "private company", "public company", "AED"},
			SourceType:          "seed",
		},
		{
			ID:                  "company_names_001",
			DocumentTitle:       "Company Names Regulations",
			SectionLabel:        "Company Name Requirements",
			RegulationReference: "CN-2020-008",
			Category:            "incorporation",
			Content:             "Company names must end with appropriate legal suffix: Limited/Ltd for private companies, PLC for public companies, or LLC for limited liability companies. Cannot contain prohibited words: Bank, Insurance, Islamic (unless licensed), Trust, Fund Management.",
			Keywords:            []string{"company name", "legal suffix", "Limited", "LLC", "PLC", "prohibited names"},
			SourceType:          "seed",
		},
		{
			ID:                  "directors_req_001",
			DocumentTitle:       "Directors Regulations 2020",
			SectionLabel:        "Director Requirements",
			RegulationReference: "DIR-2020-012",
			Category:            "governance",
			Content:             "Every company must have at least one natural person director who is ordinarily resident in the UAE or holds UAE residency visa.",
			Keywords:            []string{"directors", "natural person", "UAE resident", "residency visa"},
			SourceType:          "seed",
		},
		{
			ID:                  "memorandum_req_001",
			DocumentTitle:       "Memorandum Requirements Guide",
			SectionLabel:        "Memorandum Content",
			RegulationReference: "MEM-2020-001",
			Category:            "memorandum",
			Content:             "Memorandum of Association must include: company name clause, registered office clause, objects clause, liability clause, and share capital clause with subscriber details.",
			Keywords:            []string{"memorandum", "company name clause", "objects clause", "liability clause", "subscribers"},
			SourceType:          "seed",
		},
	}
}
