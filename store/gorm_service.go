package store

import (
	"context"
	"errors"
	"fmt"

	"laundryos-backend/models"

	"gorm.io/gorm"
)

// GormServiceStore keeps services in a relational table. Ids come from the
// table's autoincrement key and are never reused.
type GormServiceStore struct {
	db *gorm.DB
}

func NewGormServiceStore(db *gorm.DB) *GormServiceStore {
	return &GormServiceStore{db: db}
}

func (s *GormServiceStore) List(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *GormServiceStore) Insert(ctx context.Context, svc models.Service) (models.Service, error) {
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}

	svc.ID = 0
	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		return models.Service{}, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

func (s *GormServiceStore) Find(ctx context.Context, id uint) (models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Service{}, ErrNotFound
		}
		return models.Service{}, fmt.Errorf("find service %d: %w", id, err)
	}
	return svc, nil
}

func (s *GormServiceStore) Replace(ctx context.Context, id uint, svc models.Service) (models.Service, error) {
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Service
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Save writes every column, including zero values.
		svc.ID = id
		return tx.Save(&svc).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Service{}, ErrNotFound
		}
		return models.Service{}, fmt.Errorf("update service %d: %w", id, err)
	}
	return svc, nil
}

func (s *GormServiceStore) Remove(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Service{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete service %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormServiceStore) Count(ctx context.Context) (int, int, error) {
	var total, active int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Service{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count services: %w", err)
	}
	if err := db.Model(&models.Service{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, fmt.Errorf("count active services: %w", err)
	}
	return int(total), int(active), nil
}
