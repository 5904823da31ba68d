package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"gorm.io/gorm"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

type carModel struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Make         string    `gorm:"column:make;not null"`
	Model        string    `gorm:"column:model;not null"`
	Year         int       `gorm:"column:year"`
	Price        float64   `gorm:"column:price"`
	Mileage      int       `gorm:"column:mileage"`
	CarType      string    `gorm:"column:car_type;index"`
	Transmission string    `gorm:"column:transmission;index"`
	ImageURL     *string   `gorm:"column:image_url"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (carModel) TableName() string { return "cars" }

func toDomainCar(m carModel) domain.Car {
	return domain.Car{
		ID:           m.ID,
		Make:         m.Make,
		Model:        m.Model,
		Year:         m.Year,
		Price:        m.Price,
		Mileage:      m.Mileage,
		CarType:      domain.CarType(m.CarType),
		Transmission: domain.Transmission(m.Transmission),
		ImageURL:     m.ImageURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toCarModel(c *domain.Car) carModel {
	return carModel{
		ID:           c.ID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		Price:        c.Price,
		Mileage:      c.Mileage,
		CarType:      string(c.CarType),
		Transmission: string(c.Transmission),
		ImageURL:     c.ImageURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *CarRepository) Create(ctx context.Context, c *domain.Car) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m := toCarModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*c = toDomainCar(m)
	return nil
}

func (r *CarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	var m carModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	car := toDomainCar(m)
	return &car, nil
}

func (r *CarRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []carModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Car, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCar(m))
	}
	return out, nil
}

func (r *CarRepository) List(ctx context.Context, f domain.CarFilter) ([]domain.Car, int64, error) {
	q := r.db.WithContext(ctx).Model(&carModel{})

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where(`(LOWER(make) LIKE ? ESCAPE '\' OR LOWER(model) LIKE ? ESCAPE '\')`, like, like)
	}
	if f.CarType != "" {
		q = q.Where("car_type = ?", string(f.CarType))
	}
	if f.Transmission != "" {
		q = q.Where("transmission = ?", string(f.Transmission))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []carModel
	if err := q.Order("created_at ASC").Order("id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	cars := make([]domain.Car, 0, len(rows))
	for _, m := range rows {
		cars = append(cars, toDomainCar(m))
	}
	return cars, total, nil
}

// Update applies patch to the car with id and returns the stored result.
func (r *CarRepository) Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
	var out carModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			return err
		}

		updates := patchColumns(patch)
		updates["updated_at"] = time.Now().UTC()
		if err := tx.Model(&carModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	car := toDomainCar(out)
	return &car, nil
}

func patchColumns(p domain.CarPatch) map[string]any {
	updates := map[string]any{}
	if p.Make != nil {
		updates["make"] = *p.Make
	}
	if p.Model != nil {
		updates["model"] = *p.Model
	}
	if p.Year != nil {
		updates["year"] = *p.Year
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Mileage != nil {
		updates["mileage"] = *p.Mileage
	}
	if p.CarType != nil {
		updates["car_type"] = string(*p.CarType)
	}
	if p.Transmission != nil {
		updates["transmission"] = string(*p.Transmission)
	}
	if p.ImageURLSet {
		if p.ImageURL == nil {
			updates["image_url"] = gorm.Expr("NULL")
		} else {
			updates["image_url"] = *p.ImageURL
		}
	}
	return updates
}

func (r *CarRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&carModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
