package extract_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/autolistings/listing-sync/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestUnitPrice(t *testing.T) {
	tests := map[string]struct {
		text   string
		want   int
		wantOk bool
	}{
		"dollar with separators": {text: "$15,200", want: 15200, wantOk: true},
		"dollar with space":      {text: "Price: $ 9,995.00", want: 9995, wantOk: true},
		"plain number":           {text: "18500", want: 18500, wantOk: true},
		"millions":               {text: "$1,250,000", want: 1250000, wantOk: true},
		"no number":              {text: "Call for price", wantOk: false},
		"empty":                  {text: "", wantOk: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := extract.Price(tt.text)

			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitPrices(t *testing.T) {
	tests := map[string]struct {
		text string
		want []extract.PriceMatch
	}{
		"sale price": {
			text: "Was $18,500 Now $15,200",
			want: []extract.PriceMatch{{Value: 18500, Grouped: true}, {Value: 15200, Grouped: true}},
		},
		"ungrouped": {
			text: "$2024",
			want: []extract.PriceMatch{{Value: 2024}},
		},
		"no number": {
			text: "Call for price",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.Prices(tt.text))
		})
	}
}

func TestUnitNumber(t *testing.T) {
	tests := map[string]struct {
		text   string
		want   int
		wantOk bool
	}{
		"digits":     {text: "52310", want: 52310, wantOk: true},
		"separators": {text: " 28,400 ", want: 28400, wantOk: true},
		"decimal":    {text: "19900.00", want: 19900, wantOk: true},
		"with unit":  {text: "28,400 miles", wantOk: false},
		"text":       {text: "n/a", wantOk: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := extract.Number(tt.text)

			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitMileage(t *testing.T) {
	tests := map[string]struct {
		text   string
		want   int
		wantOk bool
	}{
		"miles":           {text: "45,120 miles", want: 45120, wantOk: true},
		"mi":              {text: "Mileage: 88000 mi", want: 88000, wantOk: true},
		"km":              {text: "12000 km", want: 12000, wantOk: true},
		"thousands":       {text: "42k miles", want: 42000, wantOk: true},
		"case":            {text: "7,500 MILES", want: 7500, wantOk: true},
		"no unit":         {text: "45120", wantOk: false},
		"unit in a word":  {text: "12 minutes away", wantOk: false},
		"price not miles": {text: "$15,200", wantOk: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := extract.Mileage(tt.text)

			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitYear(t *testing.T) {
	tests := map[string]struct {
		text   string
		want   int
		wantOk bool
	}{
		"title":            {text: "2021 Toyota Corolla LE", want: 2021, wantOk: true},
		"next model year":  {text: "2025 Ford F-150", want: 2025, wantOk: true},
		"too far ahead":    {text: "2030 Concept", wantOk: false},
		"too old":          {text: "1899 Carriage", wantOk: false},
		"skips bad tokens": {text: "Stock 1234 2019 Honda", want: 2019, wantOk: true},
		"no year":          {text: "Toyota Corolla", wantOk: false},
		"five digits":      {text: "20210", wantOk: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := extract.Year(tt.text, now)

			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitMakeModel(t *testing.T) {
	tests := map[string]struct {
		title     string
		wantMake  string
		wantModel string
	}{
		"after year":       {title: "2021 Toyota Corolla LE", wantMake: "Toyota", wantModel: "Corolla"},
		"no year":          {title: "Honda Civic EX", wantMake: "Honda", wantModel: "Civic"},
		"land rover":       {title: "2019 Land Rover Discovery Sport", wantMake: "Land Rover", wantModel: "Discovery"},
		"alfa romeo":       {title: "2018  alfa romeo Giulia", wantMake: "Alfa Romeo", wantModel: "Giulia"},
		"mercedes hyphen":  {title: "2020 Mercedes-Benz C300", wantMake: "Mercedes Benz", wantModel: "C300"},
		"mercedes spaced":  {title: "2020 Mercedes Benz GLE", wantMake: "Mercedes Benz", wantModel: "GLE"},
		"make only":        {title: "2015 Tesla", wantMake: "Tesla", wantModel: ""},
		"only year":        {title: "2015", wantMake: "", wantModel: ""},
		"land without car": {title: "2015 Land", wantMake: "Land", wantModel: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mk, model := extract.MakeModel(tt.title)

			assert.Equal(t, tt.wantMake, mk)
			assert.Equal(t, tt.wantModel, model)
		})
	}
}

func TestUnitVIN(t *testing.T) {
	vin, ok := extract.VIN("VIN: 1HGCM82633A004352 Stock #123")
	assert.True(t, ok)
	assert.Equal(t, "1HGCM82633A004352", vin)

	vin, ok = extract.VIN("vin 1hgcm82633a004352")
	assert.True(t, ok, "should match lowercase")
	assert.Equal(t, "1HGCM82633A004352", vin)

	_, ok = extract.VIN("1HGCM82633A00435I")
	assert.False(t, ok, "should reject I, O and Q")

	_, ok = extract.VIN("SHORT123")
	assert.False(t, ok)
}

func TestUnitDOMHelpers(t *testing.T) {
	html := `<div class="card" data-id="abc-1">
		<a class="link" href="/inventory/abc-1/">  2021 Toyota
		Corolla </a>
		<img class="lazy" src="data:image/gif;base64,R0lG" data-src="/img/1.jpg">
		<img class="set" srcset="/img/2-small.jpg 320w, /img/2-large.jpg 1024w">
		<img class="plain" src="https://cdn.example.com/3.jpg">
	</div>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	card := doc.Find(".card")

	assert.Equal(t, "2021 Toyota Corolla", extract.Text(card, ".link"))
	assert.Equal(t, "", extract.Text(card, ".missing"))
	assert.Equal(t, "abc-1", extract.Attr(card, "", "data-id"))
	assert.Equal(t, "/inventory/abc-1/", extract.Attr(card, "a", "href"))
	assert.Equal(t, "/img/1.jpg", extract.SrcFromImg(card.Find("img.lazy")))
	assert.Equal(t, "/img/2-small.jpg", extract.SrcFromImg(card.Find("img.set")))
	assert.Equal(t, "https://cdn.example.com/3.jpg", extract.SrcFromImg(card.Find("img.plain")))
}

func TestUnitResolveURL(t *testing.T) {
	base := "https://dealer.example.com/inventory?page=2"

	assert.Equal(t, "https://dealer.example.com/img/1.jpg", extract.ResolveURL(base, "/img/1.jpg"))
	assert.Equal(t, "https://dealer.example.com/car/7", extract.ResolveURL(base, "car/7"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", extract.ResolveURL(base, "//cdn.example.com/a.jpg"))
	assert.Equal(t, "", extract.ResolveURL(base, ""))
	assert.Equal(t, "", extract.ResolveURL(base, "javascript:void(0)"))
}

func TestUnitLastPathSegment(t *testing.T) {
	assert.Equal(t, "abc-1", extract.LastPathSegment("https://dealer.example.com/inventory/abc-1/"))
	assert.Equal(t, "42", extract.LastPathSegment("/cars/42?ref=list"))
}
