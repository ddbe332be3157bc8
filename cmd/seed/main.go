// Package main provides a CLI tool for seeding the database with demo data.
// Catalog entries go through the domain services so codes, uniqueness checks
// and reference validation behave exactly as in the API; initial stock is
// loaded through purchase documents so quantities and average costs come out
// of the same engine that serves production traffic.
package main

import (
	"context"
	"fmt"
	"os"

	"repairdesk/internal/config"
	appctx "repairdesk/internal/core/context"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/auth"
	"repairdesk/internal/domain/catalogs/category"
	"repairdesk/internal/domain/catalogs/customer"
	"repairdesk/internal/domain/catalogs/product"
	"repairdesk/internal/domain/catalogs/unit"
	"repairdesk/internal/domain/documents/purchase"
	"repairdesk/internal/domain/inventory"
	"repairdesk/internal/infrastructure/storage/postgres"
	"repairdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"repairdesk/internal/infrastructure/storage/postgres/document_repo"
	"repairdesk/pkg/logger"
	"repairdesk/pkg/numerator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	// Attribute seeded records to a synthetic user.
	ctx = appctx.WithUser(ctx, &appctx.UserContext{
		UserID:  "seed",
		IsAdmin: true,
	})

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(pool)

	unitRepo := catalog_repo.NewUnitRepo(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)

	unitService := unit.NewService(unitRepo, txManager, num)
	categoryService := category.NewService(categoryRepo, txManager, num)
	customerService := customer.NewService(customerRepo, txManager, num)
	productService := product.NewService(productRepo, txManager, num, product.Deps{
		Categories: categoryRepo,
		Units:      unitRepo,
	})

	engine := inventory.NewEngine(productRepo)
	purchaseService := purchase.NewService(purchaseRepo, engine, num, txManager)

	if err := seedDemoData(ctx, log, seedDeps{
		txManager:  txManager,
		units:      unitService,
		categories: categoryService,
		customers:  customerService,
		products:   productService,
		purchases:  purchaseService,
	}); err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	if os.Getenv("PRINT_DEV_TOKEN") == "true" {
		printDevToken(cfg, log)
	}

	log.Info("seeding completed successfully")
}

type seedDeps struct {
	txManager  *postgres.TxManager
	units      *unit.Service
	categories *category.Service
	customers  *customer.Service
	products   *product.Service
	purchases  *purchase.Service
}

func seedDemoData(ctx context.Context, log *logger.Logger, deps seedDeps) error {
	log.Info("seeding demo data...")

	// --- Units ---
	unitSeeds := []struct {
		code   string
		name   string
		symbol string
		uType  unit.UnitType
	}{
		{"UN-PCS", "Piece", "pcs", unit.TypePiece},
		{"UN-M", "Meter", "m", unit.TypeLength},
		{"UN-SET", "Set", "set", unit.TypePack},
	}

	unitIDs := make(map[string]string)
	for _, u := range unitSeeds {
		existing, err := deps.units.GetByCode(ctx, u.code)
		if err == nil {
			unitIDs[u.symbol] = existing.ID.String()
			continue
		}

		entry := unit.NewUnit(u.code, u.name, u.symbol, u.uType)
		if err := deps.units.Create(ctx, entry); err != nil {
			return fmt.Errorf("seed unit %s: %w", u.name, err)
		}
		unitIDs[u.symbol] = entry.ID.String()
	}

	// --- Categories ---
	categorySeeds := []struct {
		code string
		name string
	}{
		{"CAT-SCR", "Screens"},
		{"CAT-BAT", "Batteries"},
		{"CAT-ACC", "Accessories"},
	}

	categoryIDs := make(map[string]string)
	for _, c := range categorySeeds {
		existing, err := deps.categories.GetByCode(ctx, c.code)
		if err == nil {
			categoryIDs[c.code] = existing.ID.String()
			continue
		}

		entry := category.NewCategory(c.code, c.name)
		if err := deps.categories.Create(ctx, entry); err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
		categoryIDs[c.code] = entry.ID.String()
	}

	// --- Customers ---
	customerSeeds := []struct {
		code  string
		name  string
		phone string
	}{
		{"CU-00001", "Walk-in customer", ""},
		{"CU-00002", "Acme Office Supplies", "+1-202-555-0134"},
		{"CU-00003", "Jane Cooper", "+1-202-555-0187"},
	}

	for _, c := range customerSeeds {
		if _, err := deps.customers.GetByCode(ctx, c.code); err == nil {
			continue
		}

		entry := customer.NewCustomer(c.code, c.name)
		if c.phone != "" {
			phone := c.phone
			entry.Phone = &phone
		}
		if err := deps.customers.Create(ctx, entry); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.name, err)
		}
	}

	// --- Products with initial stock ---
	productSeeds := []struct {
		code         string
		name         string
		categoryCode string
		unitSymbol   string
		salePrice    string
		stockQty     int64
		stockCost    string
	}{
		{"PRD-00001", "iPhone 13 screen assembly", "CAT-SCR", "pcs", "89.99", 12, "54.50"},
		{"PRD-00002", "Galaxy S22 battery", "CAT-BAT", "pcs", "34.90", 20, "18.75"},
		{"PRD-00003", "USB-C charging cable 1m", "CAT-ACC", "pcs", "9.99", 50, "2.10"},
		{"PRD-00004", "Screen adhesive tape roll", "CAT-ACC", "m", "1.50", 100, "0.35"},
		{"PRD-00005", "Precision screwdriver set", "CAT-ACC", "set", "24.99", 8, "11.20"},
	}

	for _, p := range productSeeds {
		if _, err := deps.products.GetByCode(ctx, p.code); err == nil {
			continue
		}

		entry := product.NewProduct(
			p.code, p.name,
			categoryIDs[p.categoryCode], unitIDs[p.unitSymbol],
			types.MustMoney(p.salePrice),
		)
		if err := deps.products.Create(ctx, entry); err != nil {
			return fmt.Errorf("seed product %s: %w", p.name, err)
		}

		// Initial stock arrives as a regular purchase document.
		doc := purchase.NewPurchase(entry.ID, p.stockQty, types.MustMoney(p.stockCost))
		doc.Comment = "initial stock"
		if err := deps.purchases.Create(ctx, doc); err != nil {
			return fmt.Errorf("seed initial stock for %s: %w", p.name, err)
		}

		log.Infow("seeded product with stock",
			"code", p.code,
			"quantity", p.stockQty,
			"purchase", doc.Number,
		)
	}

	if err := bulkImportParts(ctx, deps, categoryIDs["CAT-ACC"], unitIDs["pcs"]); err != nil {
		return fmt.Errorf("bulk import parts: %w", err)
	}

	log.Info("demo data seeded successfully")
	return nil
}

// bulkImportParts loads a small-parts price list through the COPY protocol.
// These rows are catalog-only (zero stock), so writing them directly is safe:
// quantity and average cost change only through documents.
func bulkImportParts(ctx context.Context, deps seedDeps, categoryID, unitID string) error {
	parts := []struct {
		code      string
		name      string
		salePrice string
	}{
		{"PRT-00001", "Pentalobe screw P2 0.8mm", "0.10"},
		{"PRT-00002", "Phillips screw PH000 1.2mm", "0.10"},
		{"PRT-00003", "Display connector bracket", "0.45"},
		{"PRT-00004", "Battery pull tab", "0.25"},
		{"PRT-00005", "Camera lens gasket", "0.60"},
		{"PRT-00006", "SIM tray ejector pin", "0.90"},
		{"PRT-00007", "Speaker mesh sticker", "0.30"},
		{"PRT-00008", "Home button flex spacer", "0.55"},
		{"PRT-00009", "Vibration motor pad", "0.40"},
		{"PRT-00010", "Antenna contact spring", "0.35"},
	}

	// Skip the whole batch if it was loaded before.
	if _, err := deps.products.GetByCode(ctx, parts[0].code); err == nil {
		return nil
	}

	columns := []string{
		"id", "code", "name", "parent_id", "is_folder", "deletion_mark", "version",
		"category_id", "unit_id", "sale_price", "quantity", "average_cost", "description",
	}

	rows := make([][]any, 0, len(parts))
	for _, p := range parts {
		entry := product.NewProduct(p.code, p.name, categoryID, unitID, types.MustMoney(p.salePrice))
		rows = append(rows, []any{
			entry.ID, entry.Code, entry.Name, entry.ParentID, entry.IsFolder,
			entry.DeletionMark, entry.Version,
			entry.CategoryID, entry.UnitID, entry.SalePrice,
			entry.Quantity, entry.AverageCost, entry.Description,
		})
	}

	inserter := postgres.NewBatchInserter(deps.txManager)
	return deps.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		n, err := inserter.CopyFromSlice(txCtx, "cat_products", columns, rows)
		if err != nil {
			return err
		}
		if n != int64(len(rows)) {
			return fmt.Errorf("copied %d of %d rows", n, len(rows))
		}
		return nil
	})
}

// printDevToken mints a short-lived admin token for local API testing.
func printDevToken(cfg *config.Config, log *logger.Logger) {
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWT.Secret))

	token, expiresAt, err := jwtService.GenerateAccessToken(
		"seed-admin", "admin@localhost",
		[]string{"admin"}, nil, true,
	)
	if err != nil {
		log.Warnw("failed to mint dev token", "error", err)
		return
	}

	fmt.Printf("dev token (expires %s):\n%s\n", expiresAt.Format("15:04:05"), token)
}
