package main

import (
	"log"

	"go-gudang-tekstil/internal/config"
	"go-gudang-tekstil/internal/model"
	"go-gudang-tekstil/internal/repository"
	"go-gudang-tekstil/pkg/database"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	// 2. Setup Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)

	// 3. Seed users
	admin := seedUser(userRepo, cfg.BcryptCost, "admin@gudang.com", "admin123", "Admin User", model.RoleAdmin)
	seedUser(userRepo, cfg.BcryptCost, "staff@gudang.com", "staff123", "Staff User", model.RoleStaff)

	// 4. Seed sample catalog
	products := []model.Product{
		{Name: "Celana Jeans Slim Fit", Category: model.CategoryCelanaJeans, Sizes: model.SizeList{"S", "M", "L", "XL"}, Color: "Dark Blue", Material: "Denim", Stock: 50, Price: decimal.NewFromInt(250000)},
		{Name: "Celana Chino Casual", Category: model.CategoryCelana, Sizes: model.SizeList{"M", "L", "XL", "XXL"}, Color: "Khaki", Material: "Cotton", Stock: 35, Price: decimal.NewFromInt(180000)},
		{Name: "Baju Kemeja Formal", Category: model.CategoryBaju, Sizes: model.SizeList{"S", "M", "L", "XL"}, Color: "White", Material: "Cotton", Stock: 60, Price: decimal.NewFromInt(150000)},
		{Name: "Baju Kaos Polos", Category: model.CategoryBaju, Sizes: model.SizeList{"S", "M", "L", "XL", "XXL"}, Color: "Black", Material: "Cotton", Stock: 100, Price: decimal.NewFromInt(75000)},
		{Name: "Jaket Bomber", Category: model.CategoryJaket, Sizes: model.SizeList{"M", "L", "XL"}, Color: "Navy", Material: "Polyester", Stock: 25, Price: decimal.NewFromInt(350000)},
		{Name: "Jaket Denim", Category: model.CategoryJaket, Sizes: model.SizeList{"S", "M", "L", "XL"}, Color: "Light Blue", Material: "Denim", Stock: 30, Price: decimal.NewFromInt(300000)},
		{Name: "Celana Jeans Skinny", Category: model.CategoryCelanaJeans, Sizes: model.SizeList{"S", "M", "L"}, Color: "Black", Material: "Denim Stretch", Stock: 8, Price: decimal.NewFromInt(275000)},
		{Name: "Baju Polo Shirt", Category: model.CategoryBaju, Sizes: model.SizeList{"M", "L", "XL"}, Color: "Red", Material: "Cotton Pique", Stock: 5, Price: decimal.NewFromInt(120000)},
	}

	for i := range products {
		if existing, _ := productRepo.FindActiveByName(products[i].Name, nil); existing != nil {
			log.Printf("Product already exists, skipping: %s", products[i].Name)
			continue
		}
		if admin != nil {
			products[i].CreatedBy = &admin.ID
			products[i].UpdatedBy = &admin.ID
		}
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Failed to seed product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s", products[i].Name)
		}
	}

	log.Println("Seed completed")
}

func seedUser(repo repository.UserRepository, cost int, email, password, name, role string) *model.User {
	if existing, err := repo.FindByEmail(email); err == nil {
		log.Printf("User already exists, skipping: %s", email)
		return existing
	}

	user := &model.User{Email: email, Name: name, Role: role}
	if err := user.SetPassword(password, cost); err != nil {
		log.Fatalf("Failed to hash password for %s: %v", email, err)
	}
	if err := repo.Create(user); err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}
	log.Printf("User created: %s (%s)", email, role)
	return user
}
