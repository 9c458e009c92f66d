// internal/store/store_test.go
package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestBackends returns every DocumentStore implementation available in the
// test environment. The SQL backend always runs on in-memory SQLite; the
// Mongo backend joins only when MONGO_TEST_URI points at a live server.
func newTestBackends(t *testing.T) map[string]DocumentStore {
	t.Helper()

	backends := map[string]DocumentStore{}

	// A uniquely named shared-cache memory database keeps each test isolated
	// while surviving GORM's connection pooling.
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlStore, err := NewSQLStore(db)
	require.NoError(t, err)
	backends["sql"] = sqlStore

	if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
		mongoStore, err := NewMongoStore(context.Background(), uri, "catalog_test_"+uuid.New().String()[:8])
		require.NoError(t, err)
		backends["mongo"] = mongoStore
	}

	t.Cleanup(func() {
		for _, b := range backends {
			b.Close(context.Background())
		}
	})

	return backends
}

func sampleProductDoc() Document {
	return Document{
		"product_id":  "p1",
		"user_id":     "u1",
		"title":       "Ceramic Vase",
		"status":      "public",
		"views_count": 3,
		"tags":        []string{"handmade", "pottery"},
		"images": []map[string]interface{}{
			{"url": "https://cdn.example.com/p1.jpg", "is_primary": true},
		},
		"pricing":    map[string]interface{}{"price": 45.5, "currency": "USD"},
		"created_at": time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestStoreSetGetRoundTrip(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionProducts, "p1", sampleProductDoc()))

			doc, err := s.Get(ctx, CollectionProducts, "p1")
			require.NoError(t, err)

			assert.Equal(t, "Ceramic Vase", doc["title"])
			assert.Equal(t, float64(3), doc["views_count"])
			assert.Equal(t, []interface{}{"handmade", "pottery"}, doc["tags"])
			assert.Equal(t, "2025-03-01T10:00:00Z", doc["created_at"])

			images, ok := doc["images"].([]interface{})
			require.True(t, ok)
			require.Len(t, images, 1)
			first, ok := images[0].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, true, first["is_primary"])

			pricing, ok := doc["pricing"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, 45.5, pricing["price"])
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), CollectionProducts, "nope")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionProducts, "p1", sampleProductDoc()))
			require.NoError(t, s.Set(ctx, CollectionProducts, "p1", Document{
				"product_id": "p1",
				"title":      "Stoneware Bowl",
			}))

			doc, err := s.Get(ctx, CollectionProducts, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Stoneware Bowl", doc["title"])
			// Full replace, so fields from the first write are gone.
			_, hasStatus := doc["status"]
			assert.False(t, hasStatus)
		})
	}
}

func TestStoreUpdateMergesFields(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionProducts, "p1", sampleProductDoc()))

			err := s.Update(ctx, CollectionProducts, "p1", Document{
				"title":       "Glazed Vase",
				"views_count": 4,
			})
			require.NoError(t, err)

			doc, err := s.Get(ctx, CollectionProducts, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Glazed Vase", doc["title"])
			assert.Equal(t, float64(4), doc["views_count"])
			// Untouched fields survive a partial update.
			assert.Equal(t, "public", doc["status"])
		})
	}
}

func TestStoreUpdateMissing(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Update(context.Background(), CollectionProducts, "nope", Document{"title": "x"})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreUpdateEmptyIsNoOp(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			// No document exists, yet an empty update must not error.
			assert.NoError(t, s.Update(context.Background(), CollectionProducts, "nope", Document{}))
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionProducts, "p1", sampleProductDoc()))
			require.NoError(t, s.Delete(ctx, CollectionProducts, "p1"))

			_, err := s.Get(ctx, CollectionProducts, "p1")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, s.Delete(ctx, CollectionProducts, "p1"), ErrNotFound)
		})
	}
}

func TestStoreQueryEquality(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionProducts, "a", Document{
				"user_id": "u1", "status": "public", "title": "A",
			}))
			require.NoError(t, s.Set(ctx, CollectionProducts, "b", Document{
				"user_id": "u1", "status": "draft", "title": "B",
			}))
			require.NoError(t, s.Set(ctx, CollectionProducts, "c", Document{
				"user_id": "u2", "status": "public", "title": "C",
			}))

			docs, err := s.Query(ctx, CollectionProducts, Eq("user_id", "u1"), Eq("status", "public"))
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, "A", docs[0]["title"])
		})
	}
}

func TestStoreQueryNoConditions(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionSales, "s1", Document{"amount": 10.0}))
			require.NoError(t, s.Set(ctx, CollectionSales, "s2", Document{"amount": 20.0}))

			docs, err := s.Query(ctx, CollectionSales)
			require.NoError(t, err)
			assert.Len(t, docs, 2)
		})
	}
}

func TestStoreQueryRangeConditions(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionSales, "s1", Document{"user_id": "u1", "amount": 10.0}))
			require.NoError(t, s.Set(ctx, CollectionSales, "s2", Document{"user_id": "u1", "amount": 25.0}))
			require.NoError(t, s.Set(ctx, CollectionSales, "s3", Document{"user_id": "u1", "amount": 40.0}))

			docs, err := s.Query(ctx, CollectionSales,
				Eq("user_id", "u1"),
				Condition{Field: "amount", Op: OpGte, Value: 20},
				Condition{Field: "amount", Op: OpLt, Value: 40},
			)
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, float64(25), docs[0]["amount"])
		})
	}
}

func TestStoreCollectionsAreIsolated(t *testing.T) {
	for name, s := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, CollectionProducts, "x", Document{"kind": "product"}))
			require.NoError(t, s.Set(ctx, CollectionUsers, "x", Document{"kind": "user"}))

			doc, err := s.Get(ctx, CollectionUsers, "x")
			require.NoError(t, err)
			assert.Equal(t, "user", doc["kind"])

			require.NoError(t, s.Delete(ctx, CollectionUsers, "x"))
			_, err = s.Get(ctx, CollectionProducts, "x")
			assert.NoError(t, err)
		})
	}
}

func TestNormalizeShapes(t *testing.T) {
	assert.Equal(t, float64(7), Normalize(7))
	assert.Equal(t, "2025-03-01T10:00:00Z", Normalize(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, []interface{}{"a", "b"}, Normalize([]string{"a", "b"}))
	assert.Equal(t, map[string]interface{}{"n": float64(1)}, Normalize(map[string]int{"n": 1}))
}
