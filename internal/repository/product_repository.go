package repository

import (
	"errors"
	"time"

	"go-supermart-pos/internal/models"

	"gorm.io/gorm"
)

// ProductRepo is the catalog store. It owns the products table; every
// other component only references product rows through it.
type ProductRepo struct {
	DB *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{DB: db} }

// ProductFilter narrows List. Search matches name, barcode and category
// as a case-insensitive substring; Category is an exact match.
type ProductFilter struct {
	Search   string
	Category string
}

func (r *ProductRepo) Create(p *models.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepo) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update applies a partial update so only the fields the client sent
// change. Stock adjustments during sales never go through here.
func (r *ProductRepo) Update(id uint, fields map[string]interface{}) (*models.Product, error) {
	p, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.Model(p).Updates(fields).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) Delete(id uint) error {
	res := r.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(f ProductFilter) ([]models.Product, error) {
	q := r.DB.Model(&models.Product{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(barcode) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var products []models.Product
	if err := q.Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// lowStock scopes a product query to stock at or below the configured
// minimum. Shared with the dashboard counts so the listing and the
// headline number can never disagree.
func lowStock(db *gorm.DB) *gorm.DB {
	return db.Where("stock <= min_stock")
}

// expiringSoon scopes a product query to the 0..7 day window. The
// bounds mirror IsExpiringSoon: strictly more than a day ago is
// expired, exactly 7 days out still counts. Shared with the dashboard
// counts for the same reason as lowStock.
func expiringSoon(now time.Time) func(*gorm.DB) *gorm.DB {
	lower := now.Add(-24 * time.Hour)
	upper := now.Add(models.ExpiryWindowDays * 24 * time.Hour)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expiry_date > ? AND expiry_date <= ?", lower, upper)
	}
}

// LowStock lists products whose stock has fallen to or below their
// configured minimum.
func (r *ProductRepo) LowStock() ([]models.Product, error) {
	var products []models.Product
	err := r.DB.Scopes(lowStock).Order("stock asc").Find(&products).Error
	return products, err
}

// ExpiringSoon lists products expiring within the next 7 days.
func (r *ProductRepo) ExpiringSoon(now time.Time) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.Scopes(expiringSoon(now)).Order("expiry_date asc").Find(&products).Error
	return products, err
}

// DecrementStock takes amount units off a product without the rest of
// the sale transaction around it. Exposed for inventory corrections;
// sales go through SaleRepo.CreateSale.
func (r *ProductRepo) DecrementStock(id uint, amount int) error {
	return decrementStock(r.DB, id, amount)
}

// decrementStock is the guarded decrement shared with the sale
// transaction. The stock >= amount predicate rides in the UPDATE
// itself, so two concurrent sales can never both take the last unit:
// whichever commits second matches zero rows and aborts.
func decrementStock(tx *gorm.DB, id uint, amount int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, amount).
		UpdateColumn("stock", gorm.Expr("stock - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing row from an oversell.
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrOutOfStock
	}
	return nil
}
