package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/foxxcyber/fridgelist/internal/config"
	"github.com/foxxcyber/fridgelist/internal/database"
	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/services"
	"github.com/foxxcyber/fridgelist/internal/storage"
	"github.com/foxxcyber/fridgelist/internal/validation"
)

// sampleRecipes are stored for a fresh device
var sampleRecipes = []models.Recipe{
	{
		Name:     "Pfannkuchen",
		Servings: 4,
		Ingredients: []models.Ingredient{
			{Amount: 250, Unit: "g", Name: "Mehl"},
			{Amount: 500, Unit: "ml", Name: "Milch"},
			{Amount: 3, Unit: "Stück", Name: "Eier"},
			{Amount: 1, Unit: "Prise", Name: "Salz"},
		},
		Instructions: "Alles verrühren, 20 Minuten quellen lassen und portionsweise ausbacken.",
	},
	{
		Name:     "Tomatensoße",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{Amount: 1, Unit: "Dose", Name: "Tomaten"},
			{Amount: 2, Unit: "Zehe", Name: "Knoblauch"},
			{Amount: 2, Unit: "EL", Name: "Olivenöl"},
			{Amount: 1, Unit: "Bund", Name: "Basilikum"},
		},
		Instructions: "Knoblauch in Öl anschwitzen, Tomaten zugeben und 15 Minuten köcheln lassen.",
	},
}

func main() {
	owner := flag.String("owner", "", "Device id to seed (a new one is generated if empty)")
	listFile := flag.String("list", "", "Markdown checklist to import as the shopping list")
	withList := flag.Bool("generate-list", true, "Generate a shopping list from the sample recipes")
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing")
	flag.Parse()

	// Load .env
	godotenv.Load()

	cfg := config.Load()
	zlog := zap.NewNop()

	if *owner == "" {
		*owner = uuid.New().String()
	}

	var backend storage.Backend
	switch cfg.StorageBackend {
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL, zlog)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := database.RunMigrations(context.Background(), db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		backend = db
	case "s3":
		storageService, err := services.NewStorageService(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL)
		if err != nil {
			log.Fatalf("Failed to initialize storage service: %v", err)
		}
		if err := storageService.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("Failed to ensure bucket: %v", err)
		}
		backend = storageService
	default:
		log.Fatalf("Seeding needs STORAGE_BACKEND=postgres or s3, got %q", cfg.StorageBackend)
	}

	ctx := context.Background()
	records := storage.New(backend).For(*owner)
	validator := validation.NewValidator(cfg.MaxImageBytes)
	sanitizer := validation.NewSanitizer(cfg.MaxImageBytes)

	recipes := make([]models.Recipe, 0, len(sampleRecipes))
	for _, r := range sampleRecipes {
		r.ID = uuid.New().String()
		if result := validator.ValidateRecipe(r); !result.Valid {
			log.Fatalf("Sample recipe %q is invalid: %v", r.Name, result.Errors)
		}
		recipes = append(recipes, sanitizer.SanitizeRecipe(r))
	}

	var list *models.ShoppingList
	switch {
	case *listFile != "":
		content, err := os.ReadFile(*listFile)
		if err != nil {
			log.Fatalf("Failed to read list file: %v", err)
		}
		items, err := services.NewShoppingListParser().Parse(string(content))
		if err != nil {
			log.Fatalf("Failed to parse list file: %v", err)
		}
		list = &models.ShoppingList{Items: items}
	case *withList:
		selections := make([]models.RecipeSelection, 0, len(recipes))
		for _, r := range recipes {
			selections = append(selections, models.RecipeSelection{RecipeID: r.ID, Servings: r.Servings})
		}
		generated, err := services.GenerateShoppingList(recipes, selections)
		if err != nil {
			log.Fatalf("Failed to generate shopping list: %v", err)
		}
		list = generated
	}

	log.Printf("Seeding device %s: %d recipes", *owner, len(recipes))
	if list != nil {
		log.Printf("Shopping list with %d items", len(list.Items))
		for _, item := range list.Items {
			log.Printf("  - %s %s", item.DisplayAmount(), item.Name)
		}
	}

	if *dryRun {
		log.Println("Dry run, nothing written")
		return
	}

	if err := records.SaveRecipes(ctx, recipes); err != nil {
		log.Fatalf("Failed to save recipes: %v", err)
	}
	if list != nil {
		now := time.Now()
		list.CreatedAt, list.UpdatedAt = now, now
		if err := records.SaveShoppingList(ctx, list); err != nil {
			log.Fatalf("Failed to save shopping list: %v", err)
		}
	}

	log.Println("Seeding complete")
}
