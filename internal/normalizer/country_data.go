package normalizer

// countryCodes maps ISO 3166 alpha-2 (and a few alpha-3) codes to the
// canonical French country name.
var countryCodes = map[string]string{
	"FR": "France", "BE": "Belgique", "CH": "Suisse", "DE": "Allemagne", "IT": "Italie",
	"ES": "Espagne", "PT": "Portugal", "GB": "Royaume-Uni", "UK": "Royaume-Uni", "IE": "Irlande",
	"NL": "Pays-Bas", "LU": "Luxembourg", "AT": "Autriche", "GR": "Grèce", "PL": "Pologne",
	"SE": "Suède", "NO": "Norvège", "DK": "Danemark", "FI": "Finlande", "CZ": "République tchèque",
	"HU": "Hongrie", "RO": "Roumanie", "BG": "Bulgarie", "HR": "Croatie", "SI": "Slovénie",
	"SK": "Slovaquie", "EE": "Estonie", "LV": "Lettonie", "LT": "Lituanie", "CY": "Chypre",
	"MT": "Malte",

	"US": "États-Unis", "USA": "États-Unis", "CA": "Canada", "MX": "Mexique", "BR": "Brésil",
	"AR": "Argentine", "CL": "Chili", "CO": "Colombie", "PE": "Pérou", "VE": "Venezuela",

	"CN": "Chine", "JP": "Japon", "IN": "Inde", "KR": "Corée du Sud", "TH": "Thaïlande",
	"VN": "Vietnam", "ID": "Indonésie", "MY": "Malaisie", "SG": "Singapour", "PH": "Philippines",
	"PK": "Pakistan", "BD": "Bangladesh", "AE": "Émirats arabes unis", "SA": "Arabie saoudite",
	"IL": "Israël", "TR": "Turquie",

	"MA": "Maroc", "DZ": "Algérie", "TN": "Tunisie", "EG": "Égypte", "ZA": "Afrique du Sud",
	"NG": "Nigeria", "KE": "Kenya", "GH": "Ghana", "SN": "Sénégal", "CI": "Côte d'Ivoire",

	"AU": "Australie", "NZ": "Nouvelle-Zélande",
}

// validCountries is the canonical list, in fuzzy-match priority order.
var validCountries = []string{
	"France", "Belgique", "Suisse", "Allemagne", "Italie", "Espagne", "Portugal", "Royaume-Uni",
	"Irlande", "Pays-Bas", "Luxembourg", "Autriche", "Grèce", "Pologne", "Suède", "Norvège",
	"Danemark", "Finlande", "République tchèque", "Hongrie", "Roumanie", "Bulgarie", "Croatie",
	"Slovénie", "Slovaquie", "Estonie", "Lettonie", "Lituanie", "Chypre", "Malte",

	"États-Unis", "Canada", "Mexique", "Brésil", "Argentine", "Chili", "Colombie", "Pérou",
	"Venezuela",

	"Chine", "Japon", "Inde", "Corée du Sud", "Thaïlande", "Vietnam", "Indonésie", "Malaisie",
	"Singapour", "Philippines", "Pakistan", "Bangladesh", "Émirats arabes unis", "Arabie saoudite",
	"Israël", "Turquie",

	"Maroc", "Algérie", "Tunisie", "Égypte", "Afrique du Sud", "Nigeria", "Kenya", "Ghana",
	"Sénégal", "Côte d'Ivoire",

	"Australie", "Nouvelle-Zélande",
}

// countryVariants maps lowercase English names and unaccented French
// spellings to the canonical name.
var countryVariants = map[string]string{
	"united states":            "États-Unis",
	"united states of america": "États-Unis",
	"usa":                      "États-Unis",
	"united kingdom":           "Royaume-Uni",
	"great britain":            "Royaume-Uni",
	"england":                  "Royaume-Uni",
	"scotland":                 "Royaume-Uni",
	"wales":                    "Royaume-Uni",
	"netherlands":              "Pays-Bas",
	"holland":                  "Pays-Bas",
	"germany":                  "Allemagne",
	"spain":                    "Espagne",
	"italy":                    "Italie",
	"switzerland":              "Suisse",
	"belgium":                  "Belgique",
	"austria":                  "Autriche",
	"portugal":                 "Portugal",
	"greece":                   "Grèce",
	"poland":                   "Pologne",
	"sweden":                   "Suède",
	"norway":                   "Norvège",
	"denmark":                  "Danemark",
	"finland":                  "Finlande",
	"czech republic":           "République tchèque",
	"hungary":                  "Hongrie",
	"romania":                  "Roumanie",
	"bulgaria":                 "Bulgarie",
	"croatia":                  "Croatie",
	"slovenia":                 "Slovénie",
	"slovakia":                 "Slovaquie",
	"china":                    "Chine",
	"japan":                    "Japon",
	"india":                    "Inde",
	"south korea":              "Corée du Sud",
	"thailand":                 "Thaïlande",
	"vietnam":                  "Vietnam",
	"indonesia":                "Indonésie",
	"malaysia":                 "Malaisie",
	"singapore":                "Singapour",
	"philippines":              "Philippines",
	"australia":                "Australie",
	"new zealand":              "Nouvelle-Zélande",
	"brazil":                   "Brésil",
	"argentina":                "Argentine",
	"canada":                   "Canada",
	"mexico":                   "Mexique",
	"morocco":                  "Maroc",
	"algeria":                  "Algérie",
	"tunisia":                  "Tunisie",
	"egypt":                    "Égypte",
	"south africa":             "Afrique du Sud",

	"etats-unis":          "États-Unis",
	"etats unis":          "États-Unis",
	"royaume uni":         "Royaume-Uni",
	"pays bas":            "Pays-Bas",
	"emirats arabes unis": "Émirats arabes unis",
	"arabie saoudite":     "Arabie saoudite",
	"coree du sud":        "Corée du Sud",
	"afrique du sud":      "Afrique du Sud",
	"nouvelle zelande":    "Nouvelle-Zélande",
	"nouvelle-zelande":    "Nouvelle-Zélande",
	"republique tcheque":  "République tchèque",
}
