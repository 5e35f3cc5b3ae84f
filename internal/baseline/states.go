package baseline

// Monthly electricity cost per person by state (USD).
var electricityByState = map[string]float64{
	"AL": 50, "AK": 58, "AZ": 46, "AR": 42, "CA": 79,
	"CO": 37, "CT": 77, "DE": 54, "FL": 54, "GA": 50,
	"HI": 82, "ID": 31, "IL": 46, "IN": 42, "IA": 40,
	"KS": 42, "KY": 40, "LA": 44, "ME": 62, "MD": 58,
	"MA": 69, "MI": 50, "MN": 49, "MS": 46, "MO": 42,
	"MT": 35, "NE": 40, "NV": 42, "NH": 65, "NJ": 62,
	"NM": 33, "NY": 65, "NC": 46, "ND": 38, "OH": 46,
	"OK": 40, "OR": 42, "PA": 54, "RI": 69, "SC": 50,
	"SD": 42, "TN": 44, "TX": 66, "UT": 33, "VT": 62,
	"VA": 50, "WA": 37, "WV": 42, "WI": 50, "WY": 35,
}

// Natural gas heating per person, monthly during the heating season.
var gasHeatingByState = map[string]float64{
	"RI": 73, "AK": 59, "MI": 52, "MO": 51, "CT": 51,
	"OH": 48, "IL": 47, "IN": 46, "WI": 45, "PA": 44,
	"NY": 44, "NJ": 43, "MA": 42, "MN": 41, "IA": 40,
	"KS": 39, "NE": 38, "ND": 37, "SD": 36, "WY": 35,
	"CO": 34, "OK": 33, "TX": 32, "NM": 31, "UT": 30,
	"NV": 29, "CA": 35, "OR": 33, "WA": 31, "ID": 29,
	"MT": 32, "AL": 28, "AR": 27, "FL": 25, "GA": 26,
	"KY": 29, "LA": 26, "NC": 28, "SC": 27, "TN": 28,
	"VA": 30, "WV": 31, "AZ": 27, "DE": 35, "MD": 36,
	"ME": 38, "NH": 40, "VT": 41, "HI": 45,
}

// Electric resistance heating per person, roughly 2.5x the winter
// electricity rate.
var electricHeatingByState = map[string]float64{
	"AL": 125, "AK": 145, "AZ": 115, "AR": 105, "CA": 198,
	"CO": 93, "CT": 193, "DE": 135, "FL": 135, "GA": 125,
	"HI": 205, "ID": 78, "IL": 115, "IN": 105, "IA": 100,
	"KS": 105, "KY": 100, "LA": 110, "ME": 155, "MD": 145,
	"MA": 173, "MI": 125, "MN": 123, "MS": 115, "MO": 105,
	"MT": 88, "NE": 100, "NV": 105, "NH": 163, "NJ": 155,
	"NM": 83, "NY": 163, "NC": 115, "ND": 95, "OH": 115,
	"OK": 100, "OR": 105, "PA": 135, "RI": 173, "SC": 125,
	"SD": 105, "TN": 110, "TX": 165, "UT": 83, "VT": 155,
	"VA": 125, "WA": 93, "WV": 105, "WI": 125, "WY": 88,
}
