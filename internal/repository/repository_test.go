package repository

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "../../migrations",
	}

	repo, err := NewRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func seedProduct(t *testing.T, repo *Repository, price string) *domain.Product {
	t.Helper()

	p := &domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(8),
		Price:       decimal.RequireFromString(price),
		OldPrice:    decimal.RequireFromString(price).Add(decimal.NewFromInt(5)),
		Inventory:   100,
		Slug:        gofakeit.UUID(),
	}
	require.NoError(t, repo.CreateProduct(context.Background(), p, nil))
	return p
}

func seedCartWithItems(t *testing.T, repo *Repository, items map[*domain.Product]int) *domain.Cart {
	t.Helper()

	ctx := context.Background()
	cart, err := repo.CreateCart(ctx)
	require.NoError(t, err)

	for product, quantity := range items {
		_, err := repo.AddItem(ctx, cart.ID, product.ID, quantity)
		require.NoError(t, err)
	}
	return cart
}
