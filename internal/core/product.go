package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/model"
)

const productColumns = `id, name, slug, description, category_id, price_cents, compare_at_price_cents,
	sku, stock, status, image_url, created_at, updated_at`

var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price_cents",
	"stock":      "stock",
	"created_at": "created_at",
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.CategoryID, &p.PriceCents,
		&p.CompareAtPriceCents, &p.SKU, &p.Stock, &p.Status, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

const variantColumns = `v.id, v.product_id, v.sku, v.color_id, v.material_id, v.age_group_id, v.size,
	v.price_cents, v.stock, p.name, v.created_at, v.updated_at`

func scanVariant(row pgx.Row, v *model.Variant) error {
	return row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.ColorID, &v.MaterialID, &v.AgeGroupID, &v.Size,
		&v.PriceCents, &v.Stock, &v.ProductName, &v.CreatedAt, &v.UpdatedAt)
}

// ProductExportRow is one line of the product spreadsheet.
type ProductExportRow struct {
	ID           string
	Name         string
	SKU          string
	CategoryName string
	PriceCents   int64
	Stock        int
	Status       string
	VariantCount int
	CreatedAt    string
}

type ProductService struct {
	db DB
}

func NewProductService(db DB) *ProductService {
	return &ProductService{db: db}
}

// Create inserts a product and any variants attached to it.
func (s *ProductService) Create(ctx context.Context, p *model.Product) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO products (id, name, slug, description, category_id, price_cents, compare_at_price_cents,
		 sku, stock, status, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Slug, p.Description, p.CategoryID, p.PriceCents, p.CompareAtPriceCents,
		p.SKU, p.Stock, p.Status, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create product")
	}
	for i := range p.Variants {
		p.Variants[i].ProductID = p.ID
		if err := s.CreateVariant(ctx, &p.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns the product with its variants.
func (s *ProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := scanProduct(s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	if err != nil {
		return nil, dbError(err, "get product %s", id)
	}
	variants, err := s.ListVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return &p, nil
}

// List returns one page of products and the total number of matches.
// Extra filters: category_id.
func (s *ProductService) List(ctx context.Context, params request.ListParams) ([]model.Product, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`(name ILIKE $%[1]d OR sku ILIKE $%[1]d)`, "%"+params.Search+"%")
	}
	if params.Status != "" {
		c.add(`status = $%d`, params.Status)
	}
	if v := params.Filter("category_id"); v != "" {
		c.add(`category_id = $%d`, v)
	}

	total, err := countRows(ctx, s.db, "products", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	suffix, args := c.page(params, productSortColumns, "created_at")
	rows, err := s.db.Query(ctx, `SELECT `+productColumns+` FROM products`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}
	return products, total, nil
}

func (s *ProductService) Update(ctx context.Context, p *model.Product) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE products SET name = $1, slug = $2, description = $3, category_id = $4, price_cents = $5,
		 compare_at_price_cents = $6, sku = $7, stock = $8, status = $9, image_url = $10, updated_at = now()
		 WHERE id = $11`,
		p.Name, p.Slug, p.Description, p.CategoryID, p.PriceCents,
		p.CompareAtPriceCents, p.SKU, p.Stock, p.Status, p.ImageURL, p.ID,
	)
	if err != nil {
		return dbError(err, "update product %s", p.ID)
	}
	return notFound(tag, "update product %s", p.ID)
}

// Patch changes the status, stock and price of a product when set and
// returns the updated row.
func (s *ProductService) Patch(ctx context.Context, id string, status *string, stock *int, priceCents *int64) (*model.Product, error) {
	var p model.Product
	err := scanProduct(s.db.QueryRow(ctx,
		`UPDATE products SET status = COALESCE($2, status), stock = COALESCE($3, stock),
		 price_cents = COALESCE($4, price_cents), updated_at = now()
		 WHERE id = $1 RETURNING `+productColumns,
		id, status, stock, priceCents,
	), &p)
	if err != nil {
		return nil, dbError(err, "patch product %s", id)
	}
	return &p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete product %s", id)
	}
	return notFound(tag, "delete product %s", id)
}

// ExportRows returns every product with its category name, ordered by name.
func (s *ProductService) ExportRows(ctx context.Context) ([]ProductExportRow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.name, p.sku, COALESCE(c.name, ''), p.price_cents, p.stock, p.status,
		 (SELECT count(*) FROM variants v WHERE v.product_id = p.id),
		 to_char(p.created_at, 'YYYY-MM-DD')
		 FROM products p LEFT JOIN categories c ON c.id = p.category_id
		 ORDER BY p.name, p.id`)
	if err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}
	defer rows.Close()

	var out []ProductExportRow
	for rows.Next() {
		var r ProductExportRow
		if err := rows.Scan(&r.ID, &r.Name, &r.SKU, &r.CategoryName, &r.PriceCents, &r.Stock,
			&r.Status, &r.VariantCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product export row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product export rows: %w", err)
	}
	return out, nil
}

// ---------- Variants ----------

func (s *ProductService) CreateVariant(ctx context.Context, v *model.Variant) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO variants (id, product_id, sku, color_id, material_id, age_group_id, size, price_cents, stock, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.ProductID, v.SKU, v.ColorID, v.MaterialID, v.AgeGroupID, v.Size, v.PriceCents, v.Stock, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create variant %s", v.SKU)
	}
	return nil
}

func (s *ProductService) GetVariant(ctx context.Context, id string) (*model.Variant, error) {
	var v model.Variant
	err := scanVariant(s.db.QueryRow(ctx,
		`SELECT `+variantColumns+` FROM variants v JOIN products p ON p.id = v.product_id WHERE v.id = $1`, id), &v)
	if err != nil {
		return nil, dbError(err, "get variant %s", id)
	}
	return &v, nil
}

func (s *ProductService) ListVariants(ctx context.Context, productID string) ([]model.Variant, error) {
	return s.queryVariants(ctx,
		`SELECT `+variantColumns+` FROM variants v JOIN products p ON p.id = v.product_id
		 WHERE v.product_id = $1 ORDER BY v.created_at, v.id`, productID)
}

// GroupedVariants returns every variant grouped under its product, products
// in the order their first variant appears.
func (s *ProductService) GroupedVariants(ctx context.Context) ([]model.VariantGroup, error) {
	variants, err := s.queryVariants(ctx,
		`SELECT `+variantColumns+` FROM variants v JOIN products p ON p.id = v.product_id
		 ORDER BY p.name, p.id, v.created_at, v.id`)
	if err != nil {
		return nil, err
	}
	groups := listing.GroupBy(variants, func(v model.Variant) string { return v.ProductID })
	out := make([]model.VariantGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.VariantGroup{
			ProductID:   g.Key,
			ProductName: g.Items[0].ProductName,
			Variants:    g.Items,
		})
	}
	return out, nil
}

func (s *ProductService) UpdateVariant(ctx context.Context, v *model.Variant) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE variants SET sku = $1, color_id = $2, material_id = $3, age_group_id = $4, size = $5,
		 price_cents = $6, stock = $7, updated_at = now() WHERE id = $8`,
		v.SKU, v.ColorID, v.MaterialID, v.AgeGroupID, v.Size, v.PriceCents, v.Stock, v.ID,
	)
	if err != nil {
		return dbError(err, "update variant %s", v.ID)
	}
	return notFound(tag, "update variant %s", v.ID)
}

func (s *ProductService) DeleteVariant(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete variant %s", id)
	}
	return notFound(tag, "delete variant %s", id)
}

func (s *ProductService) queryVariants(ctx context.Context, sql string, args ...any) ([]model.Variant, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	variants := []model.Variant{}
	for rows.Next() {
		var v model.Variant
		if err := scanVariant(rows, &v); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return variants, nil
}
