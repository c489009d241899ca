package lumina

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCatalog is returned by LoadCatalog when the data holds no items.
var ErrEmptyCatalog = errors.New("lumina: catalog has no items")

// Item is one piece in the collection. Items are supplied once and treated
// as read-only by the engines.
type Item struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Details     []string `json:"details"`
}

// LoadCatalog parses catalog JSON. Accepts either a bare array of items or an
// object with an "items" array. Items without a title are rejected; missing
// IDs are assigned from their 1-based position.
func LoadCatalog(jsonData []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(jsonData)
	var items []Item
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("lumina: failed to parse catalog JSON: %w", err)
		}
	} else {
		var probe struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, fmt.Errorf("lumina: failed to parse catalog JSON: %w", err)
		}
		if probe.Items == nil {
			return nil, fmt.Errorf("lumina: catalog JSON has no \"items\" key")
		}
		if err := json.Unmarshal(probe.Items, &items); err != nil {
			return nil, fmt.Errorf("lumina: failed to parse catalog items: %w", err)
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i := range items {
		if strings.TrimSpace(items[i].Title) == "" {
			return nil, fmt.Errorf("lumina: catalog item %d has no title", i)
		}
		if items[i].ID == 0 {
			items[i].ID = i + 1
		}
	}
	return items, nil
}

// DefaultCatalog returns the house bridal edit. The slice is freshly
// allocated on each call.
func DefaultCatalog() []Item {
	return []Item{
		{
			ID:          1,
			Title:       "Badshahi Jora",
			Category:    "Bridal Couture",
			Description: "A masterpiece of zardozi and kora work on deep crimson velvet. This silhouette embodies the timeless elegance of Pakistani heritage.",
			Price:       "P.O.R",
			Image:       "bridal/Badshahi Jora.jpg",
			Details:     []string{"Hand-embroidered bodice", "Gota patti detailing", "Raw silk inner lining", "Silk net dupatta with heavy borders"},
		},
		{
			ID:          2,
			Title:       "Crimson Grace",
			Category:    "Nikkah Collection",
			Description: "Subtle yet sophisticated. A blend of ivory silk and silver threadwork, perfect for an ethereal Nikkah ceremony.",
			Price:       "P.O.R",
			Image:       "bridal/Crimson Grace.jpg",
			Details:     []string{"Chatta patti borders", "Swarovski crystal accents", "Crinkle chiffon veil", "Bespoke tailoring"},
		},
		{
			ID:          3,
			Title:       "Rani-e-Laal",
			Category:    "Shendi Special",
			Description: "A vibrant fusion of antique gold and emerald green, featuring traditional motifs reimagined for the modern bride.",
			Price:       "P.O.R",
			Image:       "bridal/Rani-e-Laal.jpg",
			Details:     []string{"Dabka and Marori work", "Velvet appliqués", "Kimkhab fabric", "Customized length"},
		},
		{
			ID:          4,
			Title:       "Silver Lining",
			Category:    "Formal Elegance",
			Description: "Fluid movements meet intricate craftsmanship. The Mahnoor Pishwas is a celebration of volume and detail.",
			Price:       "P.O.R",
			Image:       "bridal/Silver Lining.jpg",
			Details:     []string{"60-kali flare", "Tilla and Resham embroidery", "Pure organza wrap", "Hand-crafted tassels"},
		},
	}
}
