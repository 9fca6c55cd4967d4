package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type sweetSeed struct {
	Name            string
	Category        string
	Description     string
	PricePerKgPaise int64
	CostPerKgPaise  int64
	StockGrams      int64
	Tags            []string
}

// Apply inserts basic seed data for manual testing. It is idempotent:
// existing documents are matched by their unique keys and left alone.
func Apply(ctx context.Context, db *mongo.Database) error {
	if err := ensureAdmin(ctx, db, "admin@sweetshop.local", "Shop Admin", "admin12345"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	categories := []domain.Category{
		{Name: "milk", Order: 1},
		{Name: "dry-fruit", Order: 2},
		{Name: "ghee", Order: 3},
		{Name: "bengali", Order: 4},
	}
	for _, c := range categories {
		if err := ensureCategory(ctx, db, c); err != nil {
			return fmt.Errorf("ensure category %s: %w", c.Name, err)
		}
	}

	sweets := []sweetSeed{
		{
			Name:            "Kaju Katli",
			Category:        "dry-fruit",
			Description:     "Thin cashew diamonds finished with silver leaf",
			PricePerKgPaise: 120000,
			CostPerKgPaise:  80000,
			StockGrams:      20000,
			Tags:            []string{"bestseller", "festive"},
		},
		{
			Name:            "Motichoor Laddu",
			Category:        "ghee",
			Description:     "Fine boondi laddus bound in pure ghee",
			PricePerKgPaise: 60000,
			CostPerKgPaise:  35000,
			StockGrams:      30000,
			Tags:            []string{"bestseller"},
		},
		{
			Name:            "Rasgulla",
			Category:        "bengali",
			Description:     "Spongy chhena balls in light syrup",
			PricePerKgPaise: 45000,
			CostPerKgPaise:  25000,
			StockGrams:      15000,
			Tags:            []string{"syrup"},
		},
		{
			Name:            "Kalakand",
			Category:        "milk",
			Description:     "Grainy milk cake with cardamom",
			PricePerKgPaise: 55000,
			CostPerKgPaise:  32000,
			StockGrams:      10000,
			Tags:            nil,
		},
	}
	for _, s := range sweets {
		if err := ensureSweet(ctx, db, s); err != nil {
			return fmt.Errorf("ensure sweet %s: %w", s.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, db *mongo.Database, email, name, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": bson.M{
			"name":      name,
			"email":     email,
			"password":  string(hash),
			"role":      domain.RoleAdmin,
			"orders":    bson.A{},
			"createdAt": now,
			"updatedAt": now,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func ensureCategory(ctx context.Context, db *mongo.Database, c domain.Category) error {
	_, err := db.Collection("categories").UpdateOne(ctx,
		bson.M{"name": c.Name},
		bson.M{"$setOnInsert": bson.M{"name": c.Name, "order": c.Order, "createdAt": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

// ensureSweet inserts the sweet only when no document carries its name. The
// sequential id comes from the same counter the catalog uses, so seeded and
// admin-created sweets share one id space.
func ensureSweet(ctx context.Context, db *mongo.Database, s sweetSeed) error {
	sweets := db.Collection("sweets")
	err := sweets.FindOne(ctx, bson.M{"name": s.Name}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": "sweetId"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = sweets.InsertOne(ctx, domain.Sweet{
		SweetID:                counter.Seq,
		Name:                   s.Name,
		Category:               s.Category,
		Description:            s.Description,
		PricePerKgPaise:        s.PricePerKgPaise,
		CostPerKgPaise:         s.CostPerKgPaise,
		StockGrams:             s.StockGrams,
		LowStockThresholdGrams: 5000,
		Visible:                true,
		Tags:                   s.Tags,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if mongo.IsDuplicateKeyError(err) {
		// Lost a race with a concurrent seeder; the sweet exists.
		return nil
	}
	return err
}
