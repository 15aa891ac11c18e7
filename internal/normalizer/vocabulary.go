package normalizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Canonical transmissions.
const (
	TransmissionAutomatic = "automatic"
	TransmissionManual    = "manual"
	TransmissionCVT       = "cvt"
)

// Canonical fuel types.
const (
	FuelElectric = "electric"
	FuelHybrid   = "hybrid"
	FuelDiesel   = "diesel"
	FuelGasoline = "gasoline"
)

// Canonical vehicle types.
const (
	VehicleTruck       = "truck"
	VehicleVan         = "van"
	VehicleSUV         = "suv"
	VehicleCoupe       = "coupe"
	VehicleConvertible = "convertible"
	VehicleWagon       = "wagon"
	VehicleHatchback   = "hatchback"
	VehicleSedan       = "sedan"
)

// category is a canonical value recognized by keywords.
type category struct {
	value string
	re    *regexp.Regexp
}

func newCategory(value string, keywords ...string) category {
	quoted := make([]string, len(keywords))
	for ix, keyword := range keywords {
		quoted[ix] = regexp.QuoteMeta(keyword)
	}

	return category{
		value: value,
		re:    regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(?:` + strings.Join(quoted, "|") + `)(?:$|[^a-z0-9])`),
	}
}

// Categories are listed in precedence order, first match wins.
var (
	transmissions = []category{
		newCategory(TransmissionCVT, "cvt", "continuously variable", "ivt", "xtronic"),
		newCategory(TransmissionManual, "manual", "stick", "stick shift", "m/t", "6mt", "5mt", "6-speed manual"),
		newCategory(TransmissionAutomatic, "automatic", "auto", "a/t", "dct", "tiptronic", "dual clutch"),
	}

	fuels = []category{
		newCategory(FuelElectric, "electric", "ev", "bev", "tesla"),
		newCategory(FuelHybrid, "hybrid", "phev", "plug-in"),
		newCategory(FuelDiesel, "diesel", "tdi", "duramax", "powerstroke", "power stroke", "cummins", "ecodiesel"),
		newCategory(FuelGasoline, "gasoline", "gas", "petrol", "flex fuel", "flex", "e85", "unleaded"),
	}

	vehicleTypes = []category{
		newCategory(VehicleTruck, "truck", "pickup", "crew cab", "double cab", "supercrew", "f-150", "f-250",
			"silverado", "sierra", "ram 1500", "tacoma", "tundra", "frontier", "ranger"),
		newCategory(VehicleVan, "van", "minivan", "cargo van", "sienna", "odyssey", "caravan", "pacifica", "transit"),
		newCategory(VehicleSUV, "suv", "crossover", "sport utility", "4x4", "rav4", "cr-v", "cx-5", "explorer",
			"tahoe", "suburban", "wrangler", "highlander", "pilot", "4runner", "rogue", "equinox"),
		newCategory(VehicleCoupe, "coupe", "2-door", "2dr"),
		newCategory(VehicleConvertible, "convertible", "cabriolet", "roadster", "spyder"),
		newCategory(VehicleWagon, "wagon", "estate", "sportwagen"),
		newCategory(VehicleHatchback, "hatchback", "hatch", "5-door"),
		newCategory(VehicleSedan, "sedan", "4-door", "4dr", "saloon"),
	}
)

// classify returns value of the first category matching any of texts, texts checked in order.
func classify(categories []category, texts ...string) (string, bool) {
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, c := range categories {
			if c.re.MatchString(text) {
				return c.value, true
			}
		}
	}
	return "", false
}

// knownMakes maps lowercased make spellings to canonical brand name.
var knownMakes = map[string]string{
	"acura":         "Acura",
	"alfa romeo":    "Alfa Romeo",
	"aston martin":  "Aston Martin",
	"audi":          "Audi",
	"bentley":       "Bentley",
	"bmw":           "BMW",
	"buick":         "Buick",
	"cadillac":      "Cadillac",
	"chevrolet":     "Chevrolet",
	"chevy":         "Chevrolet",
	"chrysler":      "Chrysler",
	"dodge":         "Dodge",
	"ferrari":       "Ferrari",
	"fiat":          "FIAT",
	"ford":          "Ford",
	"genesis":       "Genesis",
	"gmc":           "GMC",
	"honda":         "Honda",
	"hyundai":       "Hyundai",
	"infiniti":      "INFINITI",
	"jaguar":        "Jaguar",
	"jeep":          "Jeep",
	"kia":           "Kia",
	"lamborghini":   "Lamborghini",
	"land rover":    "Land Rover",
	"lexus":         "Lexus",
	"lincoln":       "Lincoln",
	"maserati":      "Maserati",
	"mazda":         "Mazda",
	"mclaren":       "McLaren",
	"mercedes benz": "Mercedes-Benz",
	"mercedes-benz": "Mercedes-Benz",
	"mercedes":      "Mercedes-Benz",
	"mini":          "MINI",
	"mitsubishi":    "Mitsubishi",
	"nissan":        "Nissan",
	"polestar":      "Polestar",
	"porsche":       "Porsche",
	"ram":           "RAM",
	"rivian":        "Rivian",
	"rolls royce":   "Rolls-Royce",
	"rolls-royce":   "Rolls-Royce",
	"subaru":        "Subaru",
	"tesla":         "Tesla",
	"toyota":        "Toyota",
	"volkswagen":    "Volkswagen",
	"vw":            "Volkswagen",
	"volvo":         "Volvo",
}

// canonicalBrand returns brand spelled as in knownMakes, unknown makes are title-cased.
func canonicalBrand(mk string) string {
	key := strings.ToLower(strings.Join(strings.Fields(mk), " "))
	if brand, ok := knownMakes[key]; ok {
		return brand
	}

	words := strings.Fields(key)
	for ix, word := range words {
		runes := []rune(word)
		words[ix] = string(unicode.ToUpper(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}
