package adapter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/autolistings/listing-sync/internal/extract"
	"github.com/autolistings/listing-sync/internal/fetcher"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const jsonLDSelector = `script[type="application/ld+json"]`

// vehicleTypes are schema.org types read as listings.
var vehicleTypes = map[string]struct{}{
	"Car":        {},
	"Vehicle":    {},
	"Motorcycle": {},
	"Product":    {},
}

// jsonLD reads listings from schema.org structured data blocks.
type jsonLD struct {
	*crawler
}

// NewJSONLD returns Adapter for pages describing listings with schema.org JSON-LD.
func NewJSONLD(cfg sources.SourceConfig, fetcher PageFetcher, logger *zerolog.Logger) Adapter {
	a := &jsonLD{crawler: newCrawler(cfg, fetcher, logger)}
	a.parse = a.parsePage
	return a
}

func (a *jsonLD) parsePage(_ context.Context, page *fetcher.Page) ([]models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("can't parse html: %w", err)
	}

	var nodes []gjson.Result
	doc.Find(jsonLDSelector).Each(func(_ int, script *goquery.Selection) {
		data := strings.TrimSpace(script.Text())
		if !gjson.Valid(data) {
			a.logger.Debug().Str("url", page.URL).Msg("skipping invalid json-ld block")
			return
		}
		nodes = collectVehicles(gjson.Parse(data), nodes)
	})

	listings := make([]models.RawListing, 0, len(nodes))
	for _, node := range nodes {
		listings = append(listings, parseVehicle(page.URL, node))
	}

	return listings, nil
}

// collectVehicles appends vehicle nodes found in node, descending into arrays, @graph and ItemList.
func collectVehicles(node gjson.Result, nodes []gjson.Result) []gjson.Result {
	if node.IsArray() {
		for _, child := range node.Array() {
			nodes = collectVehicles(child, nodes)
		}
		return nodes
	}

	if !node.IsObject() {
		return nodes
	}

	if graph := node.Get("@graph"); graph.Exists() {
		nodes = collectVehicles(graph, nodes)
	}

	if hasType(node, "ItemList") {
		for _, element := range node.Get("itemListElement").Array() {
			if item := element.Get("item"); item.Exists() {
				nodes = collectVehicles(item, nodes)
			} else {
				nodes = collectVehicles(element, nodes)
			}
		}
		return nodes
	}

	for _, typ := range types(node) {
		if _, ok := vehicleTypes[typ]; ok {
			return append(nodes, node)
		}
	}

	return nodes
}

// hasType reports whether node is of type typ.
func hasType(node gjson.Result, typ string) bool {
	for _, t := range types(node) {
		if t == typ {
			return true
		}
	}
	return false
}

// types returns @type of node, a string or an array, with IRI prefixes removed.
func types(node gjson.Result) []string {
	var names []string
	for _, t := range node.Get("@type").Array() {
		name := t.String()
		names = append(names, name[strings.LastIndex(name, "/")+1:])
	}
	return names
}

func parseVehicle(pageURL string, node gjson.Result) models.RawListing {
	link := extract.ResolveURL(pageURL, firstString(node, "url", "offers.url", "offers.0.url"))
	vin := firstString(node, "vehicleIdentificationNumber")

	id := firstString(node, "sku", "productID", "@id")
	if strings.HasPrefix(id, "http") || strings.HasPrefix(id, "#") {
		id = ""
	}
	if id == "" {
		id = vin
	}
	if id == "" && link != "" {
		id = extract.LastPathSegment(link)
	}

	title := firstString(node, "name")
	description := firstString(node, "description")
	if description == "" {
		description = title
	}

	mileage := firstString(node, "mileageFromOdometer.value", "mileageFromOdometer")
	if mileage != "" {
		switch strings.ToUpper(firstString(node, "mileageFromOdometer.unitCode")) {
		case "KMT":
			mileage += " km"
		case "SMI", "":
			mileage += " mi"
		}
	}

	price := firstString(node, "offers.price", "offers.0.price", "offers.lowPrice", "offers.priceSpecification.price")

	return models.RawListing{
		ExternalID:   id,
		ExternalURL:  link,
		Title:        title,
		Description:  description,
		Make:         optional(firstString(node, "brand.name", "brand", "manufacturer.name", "manufacturer")),
		Model:        optional(firstString(node, "model.name", "model")),
		Year:         optional(firstString(node, "vehicleModelDate", "modelDate", "productionDate")),
		Price:        optional(price),
		Mileage:      optional(mileage),
		Transmission: optional(firstString(node, "vehicleTransmission")),
		FuelType:     optional(firstString(node, "fuelType", "vehicleEngine.fuelType")),
		VehicleType:  optional(firstString(node, "bodyType")),
		VIN:          optional(vin),
		ImageURLs:    jsonLDImages(pageURL, node.Get("image")),
	}
}

// jsonLDImages returns absolute URLs of image property, a string, an ImageObject or an array of those.
func jsonLDImages(pageURL string, image gjson.Result) []string {
	var urls []string
	for _, img := range image.Array() {
		ref := img.String()
		if img.IsObject() {
			ref = firstString(img, "url", "contentUrl")
		}
		if u := extract.ResolveURL(pageURL, ref); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
