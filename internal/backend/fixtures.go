package backend

import "github.com/furnikart/api/internal/domain"

// Fixtures returns the bundled catalog. Prices are minor units (cents).
func Fixtures() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Aspen Fabric Sofa",
			Price:       129_900,
			Image:       "/images/products/aspen-sofa.jpg",
			Category:    "Living Room",
			Description: "Three-seat sofa with kiln-dried hardwood frame and washable linen covers.",
			Rating:      4.6,
			InStock:     true,
			Images: []string{
				"/images/products/aspen-sofa.jpg",
				"/images/products/aspen-sofa-side.jpg",
			},
		},
		{
			ID:          "2",
			Name:        "Mesa Coffee Table",
			Price:       34_900,
			Image:       "/images/products/mesa-coffee-table.jpg",
			Category:    "Living Room",
			Description: "Solid acacia coffee table with a lower storage shelf.",
			Rating:      4.3,
			InStock:     true,
			Images:      []string{"/images/products/mesa-coffee-table.jpg"},
		},
		{
			ID:          "3",
			Name:        "Nordlund Armchair",
			Price:       58_500,
			Image:       "/images/products/nordlund-armchair.jpg",
			Category:    "Living Room",
			Description: "Mid-century armchair in boucle upholstery with oak legs.",
			Rating:      4.8,
			InStock:     false,
			Images: []string{
				"/images/products/nordlund-armchair.jpg",
				"/images/products/nordlund-armchair-back.jpg",
			},
		},
		{
			ID:          "4",
			Name:        "Halvor Queen Bed Frame",
			Price:       84_900,
			Image:       "/images/products/halvor-bed.jpg",
			Category:    "Bedroom",
			Description: "Queen platform bed with upholstered headboard, no box spring needed.",
			Rating:      4.5,
			InStock:     true,
			Images:      []string{"/images/products/halvor-bed.jpg"},
		},
		{
			ID:          "5",
			Name:        "Lindqvist Nightstand",
			Price:       18_900,
			Image:       "/images/products/lindqvist-nightstand.jpg",
			Category:    "Bedroom",
			Description: "Compact two-drawer nightstand in white oak veneer.",
			Rating:      4.1,
			InStock:     true,
			Images:      []string{"/images/products/lindqvist-nightstand.jpg"},
		},
		{
			ID:          "6",
			Name:        "Sondra Six-Drawer Dresser",
			Price:       109_900,
			Image:       "/images/products/sondra-dresser.jpg",
			Category:    "Bedroom",
			Description: "Wide dresser with soft-close drawers and anti-tip hardware included.",
			Rating:      4.4,
			InStock:     true,
			Images: []string{
				"/images/products/sondra-dresser.jpg",
				"/images/products/sondra-dresser-open.jpg",
			},
		},
		{
			ID:          "7",
			Name:        "Tavola Extending Dining Table",
			Price:       149_900,
			Image:       "/images/products/tavola-table.jpg",
			Category:    "Dining",
			Description: "Extends from six to ten seats with a self-storing butterfly leaf.",
			Rating:      4.7,
			InStock:     true,
			Images:      []string{"/images/products/tavola-table.jpg"},
		},
		{
			ID:          "8",
			Name:        "Bentwood Dining Chair",
			Price:       12_900,
			Image:       "/images/products/bentwood-chair.jpg",
			Category:    "Dining",
			Description: "Stackable steam-bent beech chair, sold individually.",
			Rating:      4.0,
			InStock:     true,
			Images:      []string{"/images/products/bentwood-chair.jpg"},
		},
		{
			ID:          "9",
			Name:        "Copenhagen Sideboard",
			Price:       97_500,
			Image:       "/images/products/copenhagen-sideboard.jpg",
			Category:    "Dining",
			Description: "Walnut sideboard with cable pass-throughs and adjustable shelving.",
			Rating:      4.6,
			InStock:     false,
			Images:      []string{"/images/products/copenhagen-sideboard.jpg"},
		},
		{
			ID:          "10",
			Name:        "Foldager Standing Desk",
			Price:       64_900,
			Image:       "/images/products/foldager-desk.jpg",
			Category:    "Office",
			Description: "Electric sit-stand desk with dual motors and four memory presets.",
			Rating:      4.5,
			InStock:     true,
			Images: []string{
				"/images/products/foldager-desk.jpg",
				"/images/products/foldager-desk-raised.jpg",
			},
		},
		{
			ID:          "11",
			Name:        "Ryde Ergonomic Chair",
			Price:       42_900,
			Image:       "/images/products/ryde-chair.jpg",
			Category:    "Office",
			Description: "Mesh-back task chair with adjustable lumbar support and armrests.",
			Rating:      4.2,
			InStock:     true,
			Images:      []string{"/images/products/ryde-chair.jpg"},
		},
		{
			ID:          "12",
			Name:        "Skargaard Patio Set",
			Price:       119_900,
			Image:       "/images/products/skargaard-patio.jpg",
			Category:    "Outdoor",
			Description: "Four-piece eucalyptus patio set with weather-resistant cushions.",
			Rating:      4.3,
			InStock:     true,
			Images:      []string{"/images/products/skargaard-patio.jpg"},
		},
		{
			ID:          "13",
			Name:        "Vela Hanging Lounge Chair",
			Price:       27_500,
			Image:       "/images/products/vela-hanging-chair.jpg",
			Category:    "Outdoor",
			Description: "Powder-coated steel frame with a woven rope seat for porch or garden.",
			Rating:      3.9,
			InStock:     true,
			Images:      []string{"/images/products/vela-hanging-chair.jpg"},
		},
	}
}
