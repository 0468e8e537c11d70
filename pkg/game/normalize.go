package game

import (
	"strings"
	"time"
)

// SourceKind selects the extraction strategy for a raw record.
type SourceKind string

const (
	KindRESTElement  SourceKind = "storefront-rest-element"
	KindGraphQLOffer SourceKind = "storefront-graphql-offer"
	KindHTMLNode     SourceKind = "scraped-html-node"
)

// RawRecord is a provider-specific record, either decoded from JSON or
// assembled from a scraped HTML node.
type RawRecord = map[string]any

// preferredImageTypes is the allow-list of storefront image types, in no
// particular priority: the first image on the record with any of these
// types wins.
var preferredImageTypes = map[string]bool{
	"DieselStoreFrontWide": true,
	"OfferImageWide":       true,
	"Thumbnail":            true,
}

// Normalize converts a raw provider record into the canonical FreeGame shape.
// It returns nil when the record carries no usable title; callers skip such
// records and continue the batch.
func Normalize(raw RawRecord, kind SourceKind) *FreeGame {
	if raw == nil {
		return nil
	}

	title := strings.TrimSpace(asString(raw["title"]))
	if title == "" {
		return nil
	}

	g := &FreeGame{
		Title:       title,
		Description: asString(raw["description"]),
		ExtractedAt: time.Now().UTC(),
	}

	switch kind {
	case KindHTMLNode:
		// Scraped nodes only ever yield title/description/image.
		g.ImageURL = asString(raw["image_url"])
	default:
		g.ImageURL = pickImage(raw)
		g.EndDate = pickEndDate(raw)
		g.Namespace = asString(raw["namespace"])
		g.ID = asString(raw["id"])
	}

	return g
}

// IsFreePromotion reports whether a storefront record is a genuine free
// promotion: discounted price exactly zero and original price above zero.
// A record priced 0/0 is a placeholder or always-free entry, not a deal.
func IsFreePromotion(raw RawRecord) bool {
	total := asMap(asMap(raw["price"])["totalPrice"])
	if total == nil {
		return false
	}

	discount, ok := asNumber(total["discountPrice"])
	if !ok {
		return false
	}
	original, ok := asNumber(total["originalPrice"])
	if !ok {
		return false
	}

	return discount == 0 && original > 0
}

// pickImage returns the URL of the first key image whose type is on the
// preferred allow-list, or "" when none match.
func pickImage(raw RawRecord) string {
	for _, v := range asList(raw["keyImages"]) {
		img := asMap(v)
		if preferredImageTypes[asString(img["type"])] {
			if url := asString(img["url"]); url != "" {
				return url
			}
		}
	}
	return ""
}

// pickEndDate prefers the nested promotional-offer end date and falls back
// to the record's general expiry date.
func pickEndDate(raw RawRecord) string {
	promos := asMap(raw["promotions"])
	for _, g := range asList(promos["promotionalOffers"]) {
		group := asMap(g)
		for _, o := range asList(group["promotionalOffers"]) {
			if end := asString(asMap(o)["endDate"]); end != "" {
				return end
			}
		}
	}
	return asString(raw["expiryDate"])
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
