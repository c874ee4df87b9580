package intentpack

// countryNames maps ISO 3166-1 alpha-2 codes to the names substituted into
// query templates. Unknown codes pass through unchanged
var countryNames = map[string]string{
	"ZA": "South Africa",
	"BW": "Botswana",
	"NA": "Namibia",
	"ZW": "Zimbabwe",
	"MZ": "Mozambique",
	"LS": "Lesotho",
	"SZ": "Eswatini",
	"KE": "Kenya",
	"TZ": "Tanzania",
	"UG": "Uganda",
	"ZM": "Zambia",
	"MW": "Malawi",
	"NG": "Nigeria",
	"GH": "Ghana",
	"EG": "Egypt",
	"MA": "Morocco",
	"MU": "Mauritius",
	"GB": "United Kingdom",
	"US": "United States",
	"AU": "Australia",
	"NZ": "New Zealand",
	"DE": "Germany",
	"NL": "Netherlands",
}

// CountryName resolves an ISO code to its display name, returning the code
// itself when unknown
func CountryName(code string) string {
	if n, ok := countryNames[code]; ok {
		return n
	}
	return code
}
