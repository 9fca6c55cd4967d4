package cart

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/db"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/migrate"
)

func TestMongo_UpsertLineOverwrites(t *testing.T) {
	ctx := context.Background()
	client, database := testDB(ctx, t)
	defer client.Disconnect(context.Background())

	if err := migrate.Apply(client, database.Name()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCollections(ctx, t, database)

	repo := NewMongo(database)
	userID := primitive.NewObjectID()

	cart, err := repo.UpsertLine(ctx, userID, testLine(1, 500))
	if err != nil {
		t.Fatalf("UpsertLine: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Grams != 500 {
		t.Fatalf("unexpected cart %+v", cart.Items)
	}

	// Same sweet again: the line is overwritten, never pushed alongside.
	cart, err = repo.UpsertLine(ctx, userID, testLine(1, 300))
	if err != nil {
		t.Fatalf("UpsertLine overwrite: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line after overwrite, got %d", len(cart.Items))
	}
	if cart.Items[0].Grams != 300 || cart.Items[0].TotalPaise != 300*60000/1000 {
		t.Fatalf("line not overwritten: %+v", cart.Items[0])
	}

	cart, err = repo.UpsertLine(ctx, userID, testLine(2, 250))
	if err != nil {
		t.Fatalf("UpsertLine second sweet: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
}

func TestMongo_RemoveLineAndClear(t *testing.T) {
	ctx := context.Background()
	client, database := testDB(ctx, t)
	defer client.Disconnect(context.Background())

	if err := migrate.Apply(client, database.Name()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCollections(ctx, t, database)

	repo := NewMongo(database)
	userID := primitive.NewObjectID()

	// Removing from a cart that was never created succeeds with an empty cart.
	cart, err := repo.RemoveLine(ctx, userID, 1)
	if err != nil {
		t.Fatalf("RemoveLine on missing cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}

	if _, err := repo.UpsertLine(ctx, userID, testLine(1, 500)); err != nil {
		t.Fatalf("UpsertLine: %v", err)
	}
	if _, err := repo.UpsertLine(ctx, userID, testLine(2, 250)); err != nil {
		t.Fatalf("UpsertLine: %v", err)
	}

	cart, err = repo.RemoveLine(ctx, userID, 1)
	if err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].SweetID != 2 {
		t.Fatalf("unexpected cart after remove: %+v", cart.Items)
	}

	if err := repo.Clear(ctx, userID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	cart, err = repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", cart.Items)
	}
}

func TestMongo_GetByUserMissing(t *testing.T) {
	ctx := context.Background()
	client, database := testDB(ctx, t)
	defer client.Disconnect(context.Background())

	if err := migrate.Apply(client, database.Name()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCollections(ctx, t, database)

	repo := NewMongo(database)
	if _, err := repo.GetByUser(ctx, primitive.NewObjectID()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func testLine(sweetID, grams int64) domain.CartLine {
	return domain.CartLine{
		SweetID:         sweetID,
		Name:            "sweet",
		Grams:           grams,
		PricePerKgPaise: 60000,
		TotalPaise:      grams * 60000 / 1000,
	}
}

func testDB(ctx context.Context, t *testing.T) (*mongo.Client, *mongo.Database) {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://db-test:27017"
	}
	client, err := db.Connect(ctx, uri)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	name := os.Getenv("TEST_MONGO_DB")
	if name == "" {
		name = "sweetshop_test"
	}
	return client, client.Database(name)
}

func resetCollections(ctx context.Context, t *testing.T, database *mongo.Database) {
	t.Helper()
	if _, err := database.Collection("carts").DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("reset carts: %v", err)
	}
}
