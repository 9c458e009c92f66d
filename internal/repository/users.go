// internal/repository/users.go
package repository

import (
	"context"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/store"
)

type UserRepository struct {
	store store.DocumentStore
}

func NewUserRepository(s store.DocumentStore) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	doc, err := toDoc(user)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.CollectionUsers, user.UserID, doc)
}

func (r *UserRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	doc, err := r.store.Get(ctx, store.CollectionUsers, userID)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := fromDoc(doc, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	return r.store.Update(ctx, store.CollectionUsers, userID, fields)
}
