package core

import (
	"context"
	"fmt"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
)

var collectionSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type CollectionService struct {
	db DB
}

func NewCollectionService(db DB) *CollectionService {
	return &CollectionService{db: db}
}

func (s *CollectionService) Create(ctx context.Context, c *model.Collection) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO collections (id, name, slug, description, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Slug, c.Description, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create collection")
	}
	for _, pid := range c.ProductIDs {
		if err := s.AddProduct(ctx, c.ID, pid); err != nil {
			return err
		}
	}
	return nil
}

func (s *CollectionService) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	var c model.Collection
	err := s.db.QueryRow(ctx,
		`SELECT id, name, slug, description, active, created_at, updated_at FROM collections WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dbError(err, "get collection %s", id)
	}

	rows, err := s.db.Query(ctx,
		`SELECT product_id FROM collection_products WHERE collection_id = $1 ORDER BY position, product_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list collection %s products: %w", id, err)
	}
	defer rows.Close()

	c.ProductIDs = []string{}
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("scan collection product: %w", err)
		}
		c.ProductIDs = append(c.ProductIDs, pid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection products: %w", err)
	}
	return &c, nil
}

// List returns one page of collections; ProductIDs is left empty.
func (s *CollectionService) List(ctx context.Context, params request.ListParams) ([]model.Collection, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`name ILIKE $%d`, "%"+params.Search+"%")
	}
	switch params.Status {
	case "active":
		c.raw(`active`)
	case "inactive":
		c.raw(`NOT active`)
	}

	total, err := countRows(ctx, s.db, "collections", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count collections: %w", err)
	}

	suffix, args := c.page(params, collectionSortColumns, "created_at")
	rows, err := s.db.Query(ctx,
		`SELECT id, name, slug, description, active, created_at, updated_at FROM collections`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []model.Collection
	for rows.Next() {
		var col model.Collection
		if err := rows.Scan(&col.ID, &col.Name, &col.Slug, &col.Description, &col.Active, &col.CreatedAt, &col.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, col)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate collections: %w", err)
	}
	return collections, total, nil
}

func (s *CollectionService) Update(ctx context.Context, c *model.Collection) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE collections SET name = $1, slug = $2, description = $3, active = $4, updated_at = now() WHERE id = $5`,
		c.Name, c.Slug, c.Description, c.Active, c.ID,
	)
	if err != nil {
		return dbError(err, "update collection %s", c.ID)
	}
	return notFound(tag, "update collection %s", c.ID)
}

func (s *CollectionService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete collection %s", id)
	}
	return notFound(tag, "delete collection %s", id)
}

// AddProduct appends a product to the collection. Adding a product that is
// already a member is a no-op.
func (s *CollectionService) AddProduct(ctx context.Context, collectionID, productID string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO collection_products (collection_id, product_id, position)
		 VALUES ($1, $2, (SELECT COALESCE(max(position), 0) + 1 FROM collection_products WHERE collection_id = $1))
		 ON CONFLICT (collection_id, product_id) DO NOTHING`,
		collectionID, productID,
	)
	if err != nil {
		return dbError(err, "add product %s to collection %s", productID, collectionID)
	}
	return nil
}

func (s *CollectionService) RemoveProduct(ctx context.Context, collectionID, productID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM collection_products WHERE collection_id = $1 AND product_id = $2`, collectionID, productID)
	if err != nil {
		return dbError(err, "remove product %s from collection %s", productID, collectionID)
	}
	return notFound(tag, "remove product %s from collection %s", productID, collectionID)
}
