package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/repository/base"
)

type FieldRepository struct {
	base *base.Repository
}

func NewFieldRepository(b *base.Repository) *FieldRepository {
	return &FieldRepository{base: b}
}

// GetByID получает поле по ID. Несуществующее поле - nil без ошибки.
func (r *FieldRepository) GetByID(ctx context.Context, id int64) (*model.Field, error) {
	var field model.Field
	err := r.base.Do(ctx, http.MethodGet, fmt.Sprintf("/fields/%d", id), nil, nil, &field)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get field by id: %w", err)
	}

	if field.ID == 0 {
		field.ID = id
	}

	return &field, nil
}
