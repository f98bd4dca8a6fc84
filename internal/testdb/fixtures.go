package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// InsertUser writes a user with unique username and email.
func InsertUser(t *testing.T, tx *sql.Tx) *domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	id := uuid.New()
	user := &domain.User{
		ID:             id,
		Username:       "user-" + id.String()[:8],
		Email:          fmt.Sprintf("user-%s@example.com", id.String()[:8]),
		FirstName:      "Test",
		LastName:       "User",
		HashedPassword: "not-a-real-hash",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := tx.ExecContext(context.Background(), `
		INSERT INTO users (id, username, email, first_name, last_name, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	require.NoError(t, err, "Failed to insert user")
	return user
}

// InsertCategory writes a category with a unique slug.
func InsertCategory(t *testing.T, tx *sql.Tx, name string) *domain.Category {
	t.Helper()

	id := uuid.New()
	category := &domain.Category{
		ID:   id,
		Name: name,
		Slug: fmt.Sprintf("%s-%s", name, id.String()[:8]),
	}

	_, err := tx.ExecContext(context.Background(),
		`INSERT INTO categories (id, name, slug, description) VALUES ($1, $2, $3, $4)`,
		category.ID, category.Name, category.Slug, category.Description)
	require.NoError(t, err, "Failed to insert category")
	return category
}

// InsertProduct writes a product priced at price. category may be nil.
func InsertProduct(t *testing.T, tx *sql.Tx, name, price string, category *domain.Category) *domain.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var categoryID uuid.NullUUID
	if category != nil {
		categoryID = uuid.NullUUID{UUID: category.ID, Valid: true}
	}

	_, err := tx.ExecContext(context.Background(), `
		INSERT INTO products (id, name, description, price, image_url, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		product.ID, product.Name, product.Description, product.Price, product.ImageURL,
		categoryID, product.CreatedAt, product.UpdatedAt)
	require.NoError(t, err, "Failed to insert product")
	return product
}
