package domain

// builtinCodes is the MSIC 2008 subset shipped with the engine. Deployments extend or
// correct it through the industry_codes table or the overrides file; see industry/service.
var builtinCodes = []IndustryCode{
	// A: Agriculture, forestry and fishing
	{Code: "01111", Description: "Growing of maize", Category: "Agriculture", Section: "A", AllowsB2CConsolidation: true},
	{Code: "01261", Description: "Growing of oil palm (estate)", Category: "Agriculture", Section: "A", AllowsB2CConsolidation: true},
	{Code: "03111", Description: "Fishing on a commercial basis in ocean and coastal waters", Category: "Agriculture", Section: "A", AllowsB2CConsolidation: true},

	// B: Mining and quarrying
	{Code: "06100", Description: "Extraction of crude petroleum", Category: "Mining", Section: "B", AllowsB2CConsolidation: false, SSTApplicable: true,
		Notes: strPtr("Upstream petroleum supplies are B2B; consolidated B2C e-Invoices are not permitted")},

	// C: Manufacturing
	{Code: "10711", Description: "Manufacture of biscuits and cookies", Category: "Manufacturing", Section: "C", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "10712", Description: "Manufacture of bread, cakes and other bakery products", Category: "Manufacturing", Section: "C", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "14111", Description: "Manufacture of specific wearing apparel", Category: "Manufacturing", Section: "C", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "25119", Description: "Manufacture of other structural metal products", Category: "Manufacturing", Section: "C", AllowsB2CConsolidation: false, SSTApplicable: true,
		Notes: strPtr("Structural metal products are sold B2B; issue an e-Invoice per buyer")},

	// D/E: Utilities
	{Code: "35101", Description: "Operation of generation facilities that produce electric energy", Category: "Utilities", Section: "D", SSTApplicable: true,
		Notes: strPtr("Electricity supply must be invoiced per account holder")},
	{Code: "35102", Description: "Operation of transmission, distribution and sales of electricity to the end user", Category: "Utilities", Section: "D", SSTApplicable: true,
		Notes: strPtr("Electricity supply must be invoiced per account holder")},
	{Code: "36000", Description: "Water collection, treatment and supply", Category: "Utilities", Section: "E",
		Notes: strPtr("Water supply must be invoiced per account holder")},
	{Code: "37000", Description: "Sewerage and similar activities", Category: "Utilities", Section: "E",
		Notes: strPtr("Sewerage services must be invoiced per account holder")},

	// F: Construction
	{Code: "41001", Description: "Residential buildings", Category: "Construction", Section: "F", AllowsB2CConsolidation: false,
		Notes: strPtr("Construction contracts are individually invoiced")},
	{Code: "43301", Description: "Installation of doors, windows and shop fronts", Category: "Construction", Section: "F", AllowsB2CConsolidation: true, SSTApplicable: true},

	// G: Wholesale and retail trade
	{Code: "45101", Description: "Wholesale and retail of new motor vehicles", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: false, SSTApplicable: true,
		Notes: strPtr("Motor vehicle sales require an e-Invoice naming the registered owner")},
	{Code: "46100", Description: "Wholesale on a fee or contract basis", Category: "Wholesale Trade", Section: "G", AllowsB2CConsolidation: false,
		Notes: strPtr("Wholesale supplies are B2B and must identify the buyer")},
	{Code: "47111", Description: "Provision stores", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},
	{Code: "47112", Description: "Supermarket", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},
	{Code: "47113", Description: "Mini market", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},
	{Code: "47190", Description: "Other retail sale in non-specialized stores", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},
	{Code: "47300", Description: "Retail sale of automotive fuel in specialized stores", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "47412", Description: "Retail sale of telecommunication equipment", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "47711", Description: "Retail sale of articles of clothing", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},
	{Code: "47910", Description: "Retail sale via mail order houses or via Internet", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},

	// H: Transportation and storage
	{Code: "49221", Description: "Express bus services", Category: "Transportation", Section: "H", AllowsB2CConsolidation: true},
	{Code: "49224", Description: "Taxi operation and limousine services", Category: "Transportation", Section: "H", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "52211", Description: "Operation of parking facilities for motor vehicles", Category: "Transportation", Section: "H", SSTApplicable: true,
		Notes: strPtr("Parking operators are excluded from consolidated e-Invoices")},
	{Code: "52212", Description: "Operation of toll roads and bridges", Category: "Transportation", Section: "H",
		Notes: strPtr("Toll operators are excluded from consolidated e-Invoices")},

	// I: Accommodation and food service
	{Code: "55101", Description: "Hotels and resort hotels", Category: "Accommodation", Section: "I", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "56101", Description: "Restaurants and restaurant cum night clubs", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "56103", Description: "Fast-food restaurants", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "56104", Description: "Ice cream truck vendors and parlours", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true},
	{Code: "56107", Description: "Food stalls/hawkers", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true},
	{Code: "56210", Description: "Event catering", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "56303", Description: "Coffee shops", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true},

	// J: Information and communication
	{Code: "58110", Description: "Publishing of books, brochures and other publications", Category: "Information Technology", Section: "J", AllowsB2CConsolidation: true},
	{Code: "61101", Description: "Wired telecommunications services", Category: "Telecommunications", Section: "J", SSTApplicable: true,
		Notes: strPtr("Telecommunication services must be invoiced per subscriber")},
	{Code: "61201", Description: "Wireless telecommunications services", Category: "Telecommunications", Section: "J", SSTApplicable: true,
		Notes: strPtr("Telecommunication services must be invoiced per subscriber")},
	{Code: "62010", Description: "Computer programming activities", Category: "Information Technology", Section: "J", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "63111", Description: "Data processing activities", Category: "Information Technology", Section: "J", AllowsB2CConsolidation: true, SSTApplicable: true},

	// K: Financial and insurance
	{Code: "64191", Description: "Commercial banks", Category: "Financial Services", Section: "K", AllowsB2CConsolidation: false,
		Notes: strPtr("Banks issue statements per account holder; consolidation is not permitted")},
	{Code: "65112", Description: "General insurance", Category: "Financial Services", Section: "K", AllowsB2CConsolidation: false, SSTApplicable: true,
		Notes: strPtr("Insurance premiums are invoiced per policyholder")},

	// L: Real estate
	{Code: "68101", Description: "Buying, selling, renting and operating of self-owned or leased real estate - residential buildings", Category: "Real Estate", Section: "L", AllowsB2CConsolidation: false,
		Notes: strPtr("Property transactions require an e-Invoice per buyer or tenant")},

	// M: Professional, scientific and technical
	{Code: "69100", Description: "Legal activities", Category: "Professional Services", Section: "M", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "69200", Description: "Accounting, bookkeeping and auditing activities; tax consultancy", Category: "Professional Services", Section: "M", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "71101", Description: "Architectural services", Category: "Professional Services", Section: "M", AllowsB2CConsolidation: true, SSTApplicable: true},

	// N: Administrative and support service
	{Code: "79110", Description: "Travel agency activities", Category: "Other Services", Section: "N", AllowsB2CConsolidation: true},

	// O: Public administration
	{Code: "84111", Description: "General (overall) public administration activities at federal level", Category: "Public Administration", Section: "O",
		Notes: strPtr("Public administration bodies do not issue consolidated e-Invoices")},
	{Code: "84112", Description: "General (overall) public administration activities at state level", Category: "Public Administration", Section: "O",
		Notes: strPtr("Public administration bodies do not issue consolidated e-Invoices")},

	// P: Education
	{Code: "85101", Description: "Pre-primary education (public)", Category: "Education", Section: "P", AllowsB2CConsolidation: true},
	{Code: "85412", Description: "Driving schools", Category: "Education", Section: "P", AllowsB2CConsolidation: true},

	// Q: Human health
	{Code: "86201", Description: "General medical services", Category: "Healthcare", Section: "Q", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "86203", Description: "Dental services", Category: "Healthcare", Section: "Q", AllowsB2CConsolidation: true},

	// R: Arts, entertainment and recreation
	{Code: "93110", Description: "Operation of sports facilities", Category: "Arts & Recreation", Section: "R", AllowsB2CConsolidation: true, SSTApplicable: true},

	// S: Other service activities
	{Code: "95111", Description: "Repair of electronic equipment", Category: "Other Services", Section: "S", AllowsB2CConsolidation: true, SSTApplicable: true},
	{Code: "96020", Description: "Hairdressing and other beauty treatment", Category: "Other Services", Section: "S", AllowsB2CConsolidation: true, SSTApplicable: true},

	// T: Households as employers
	{Code: "97000", Description: "Activities of households as employers of domestic personnel", Category: "Households", Section: "T", AllowsB2CConsolidation: false,
		Notes: strPtr("Household employment is outside the scope of consolidated e-Invoices")},

	// U: Extraterritorial organizations
	{Code: "99000", Description: "Activities of extraterritorial organization and bodies", Category: "Extraterritorial", Section: "U", AllowsB2CConsolidation: false,
		Notes: strPtr("Extraterritorial bodies are outside the scope of consolidated e-Invoices")},
}

// BuiltinCodes returns a copy of the shipped dataset.
func BuiltinCodes() []IndustryCode {
	out := make([]IndustryCode, len(builtinCodes))
	copy(out, builtinCodes)
	return out
}
