package devserver

import "github.com/pandonyx/fitsupply-cli/internal/client/models"

func floatPtr(v float64) *float64 { return &v }

// seedCatalog loads a small fitness-supplement catalog so the stub is usable
// immediately after startup.
func (s *Server) seedCatalog() {
	s.categories = []models.Category{
		{ID: 1, Name: "Protein"},
		{ID: 2, Name: "Pre-Workout"},
		{ID: 3, Name: "Vitamins"},
		{ID: 4, Name: "Equipment"},
	}

	s.products = []models.Product{
		{
			ID: 1, Slug: "whey-protein-vanilla", Name: "Whey Protein Isolate (Vanilla)",
			Description:   "25g protein per serving, fast-absorbing isolate.",
			Price:         39.99, ComparePrice: floatPtr(49.99),
			StockQuantity: 120, LowStockThreshold: 10,
			IsFeatured: true, IsActive: true, Category: 1,
		},
		{
			ID: 2, Slug: "whey-protein-chocolate", Name: "Whey Protein Isolate (Chocolate)",
			Description:   "25g protein per serving, fast-absorbing isolate.",
			Price:         39.99,
			StockQuantity: 85, LowStockThreshold: 10,
			IsActive: true, Category: 1,
		},
		{
			ID: 3, Slug: "casein-protein", Name: "Micellar Casein",
			Description:   "Slow-release overnight protein.",
			Price:         44.99,
			StockQuantity: 6, LowStockThreshold: 10,
			IsActive: true, Category: 1,
		},
		{
			ID: 4, Slug: "pre-workout-blast", Name: "Pre-Workout Blast",
			Description:   "200mg caffeine, beta-alanine, citrulline malate.",
			Price:         29.99, ComparePrice: floatPtr(34.99),
			StockQuantity: 60, LowStockThreshold: 5,
			IsFeatured: true, IsActive: true, Category: 2,
		},
		{
			ID: 5, Slug: "creatine-monohydrate", Name: "Creatine Monohydrate",
			Description:   "Micronized, unflavored, 5g per serving.",
			Price:         19.99,
			StockQuantity: 200, LowStockThreshold: 20,
			IsActive: true, Category: 2,
		},
		{
			ID: 6, Slug: "multivitamin-daily", Name: "Daily Multivitamin",
			Description:   "Full-spectrum micronutrients for active adults.",
			Price:         15.99,
			StockQuantity: 150, LowStockThreshold: 15,
			IsActive: true, Category: 3,
		},
		{
			ID: 7, Slug: "omega-3-fish-oil", Name: "Omega-3 Fish Oil",
			Description:   "1000mg EPA/DHA softgels.",
			Price:         12.99,
			StockQuantity: 0, LowStockThreshold: 10,
			IsActive: true, Category: 3,
		},
		{
			ID: 8, Slug: "resistance-bands-set", Name: "Resistance Bands Set",
			Description:   "Five bands, 10-50lb, with door anchor.",
			Price:         24.99,
			StockQuantity: 40, LowStockThreshold: 5,
			IsActive: true, Category: 4,
		},
		{
			ID: 9, Slug: "discontinued-shaker", Name: "Shaker Bottle (Old Model)",
			Description:   "Replaced by the v2 shaker.",
			Price:         7.99,
			StockQuantity: 3, LowStockThreshold: 1,
			IsActive: false, Category: 4,
		},
	}
}
