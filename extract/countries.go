package extract

// Country maps an ISO 3166-1 alpha-3 code to its canonical English name.
type Country struct {
	Code string
	Name string
}

// DefaultCountries returns the builtin country table. It covers the
// destinations the assistant has content for plus the most commonly
// mentioned origin countries; callers with a country database can pass
// their own list to NewExtractor instead.
func DefaultCountries() []Country {
	return []Country{
		{"AUS", "Australia"},
		{"AUT", "Austria"},
		{"BEL", "Belgium"},
		{"BRA", "Brazil"},
		{"CAN", "Canada"},
		{"CHE", "Switzerland"},
		{"CHN", "China"},
		{"CYP", "Cyprus"},
		{"CZE", "Czech Republic"},
		{"DEU", "Germany"},
		{"DNK", "Denmark"},
		{"EGY", "Egypt"},
		{"ESP", "Spain"},
		{"EST", "Estonia"},
		{"FIN", "Finland"},
		{"FRA", "France"},
		{"GBR", "United Kingdom"},
		{"GHA", "Ghana"},
		{"GRC", "Greece"},
		{"HKG", "Hong Kong"},
		{"HUN", "Hungary"},
		{"IDN", "Indonesia"},
		{"IND", "India"},
		{"IRL", "Ireland"},
		{"ISL", "Iceland"},
		{"ISR", "Israel"},
		{"ITA", "Italy"},
		{"JAM", "Jamaica"},
		{"JPN", "Japan"},
		{"KEN", "Kenya"},
		{"KOR", "South Korea"},
		{"LTU", "Lithuania"},
		{"LUX", "Luxembourg"},
		{"LVA", "Latvia"},
		{"MEX", "Mexico"},
		{"MLT", "Malta"},
		{"MYS", "Malaysia"},
		{"NGA", "Nigeria"},
		{"NLD", "Netherlands"},
		{"NOR", "Norway"},
		{"NZL", "New Zealand"},
		{"PAK", "Pakistan"},
		{"PHL", "Philippines"},
		{"POL", "Poland"},
		{"PRT", "Portugal"},
		{"QAT", "Qatar"},
		{"ROU", "Romania"},
		{"RUS", "Russia"},
		{"SAU", "Saudi Arabia"},
		{"SGP", "Singapore"},
		{"SVK", "Slovakia"},
		{"SVN", "Slovenia"},
		{"SWE", "Sweden"},
		{"THA", "Thailand"},
		{"TUR", "Turkey"},
		{"UGA", "Uganda"},
		{"UKR", "Ukraine"},
		{"ARE", "United Arab Emirates"},
		{"USA", "United States"},
		{"VNM", "Vietnam"},
		{"ZAF", "South Africa"},
		{"ZWE", "Zimbabwe"},
	}
}
