package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
)

const categoryColumns = `id, name, slug, parent_id, description, image_url, sort_order, active, created_at, updated_at`

var categorySortColumns = map[string]string{
	"name":       "name",
	"sort_order": "sort_order",
	"created_at": "created_at",
}

func scanCategory(row pgx.Row, c *model.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Description, &c.ImageURL,
		&c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt)
}

type CategoryService struct {
	db DB
}

func NewCategoryService(db DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Create(ctx context.Context, c *model.Category) error {
	if c.ParentID != nil && *c.ParentID == c.ID {
		return invalidf("category cannot be its own parent")
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO categories (id, name, slug, parent_id, description, image_url, sort_order, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Slug, c.ParentID, c.Description, c.ImageURL, c.SortOrder, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create category")
	}
	return nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := scanCategory(s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id), &c)
	if err != nil {
		return nil, dbError(err, "get category %s", id)
	}
	return &c, nil
}

// List returns one page of categories. Status filters on "active" or
// "inactive"; extra filter parent_id.
func (s *CategoryService) List(ctx context.Context, params request.ListParams) ([]model.Category, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`(name ILIKE $%[1]d OR slug ILIKE $%[1]d)`, "%"+params.Search+"%")
	}
	switch params.Status {
	case "active":
		c.raw(`active`)
	case "inactive":
		c.raw(`NOT active`)
	}
	if v := params.Filter("parent_id"); v != "" {
		c.add(`parent_id = $%d`, v)
	}

	total, err := countRows(ctx, s.db, "categories", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	suffix, args := c.page(params, categorySortColumns, "created_at")
	categories, err := s.query(ctx, `SELECT `+categoryColumns+` FROM categories`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Update saves every field of c. A category may not be moved beneath itself
// or one of its descendants.
func (s *CategoryService) Update(ctx context.Context, c *model.Category) error {
	if c.ParentID != nil {
		if *c.ParentID == c.ID {
			return invalidf("category cannot be its own parent")
		}
		var cycle bool
		err := s.db.QueryRow(ctx,
			`WITH RECURSIVE descendants AS (
				SELECT id FROM categories WHERE parent_id = $1
				UNION ALL
				SELECT c.id FROM categories c JOIN descendants d ON c.parent_id = d.id
			)
			SELECT EXISTS (SELECT 1 FROM descendants WHERE id = $2)`,
			c.ID, *c.ParentID,
		).Scan(&cycle)
		if err != nil {
			return fmt.Errorf("check category parent: %w", err)
		}
		if cycle {
			return invalidf("category cannot be moved beneath its own descendant")
		}
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE categories SET name = $1, slug = $2, parent_id = $3, description = $4, image_url = $5,
		 sort_order = $6, active = $7, updated_at = now() WHERE id = $8`,
		c.Name, c.Slug, c.ParentID, c.Description, c.ImageURL, c.SortOrder, c.Active, c.ID,
	)
	if err != nil {
		return dbError(err, "update category %s", c.ID)
	}
	return notFound(tag, "update category %s", c.ID)
}

// Delete removes a category. It is refused while products or child
// categories still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	var products, children int
	err := s.db.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM products WHERE category_id = $1),
		        (SELECT count(*) FROM categories WHERE parent_id = $1)`, id,
	).Scan(&products, &children)
	if err != nil {
		return fmt.Errorf("check category %s references: %w", id, err)
	}
	if products > 0 {
		return conflictf("category %s is used by %d products", id, products)
	}
	if children > 0 {
		return conflictf("category %s has %d child categories", id, children)
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete category %s", id)
	}
	return notFound(tag, "delete category %s", id)
}

// Tree returns all categories nested under their parents. Siblings are
// ordered by sort_order then name; categories whose parent is missing are
// treated as roots.
func (s *CategoryService) Tree(ctx context.Context) ([]model.Category, error) {
	all, err := s.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, name, id`)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(all), nil
}

// BuildCategoryTree nests a flat, ordered category list by parent_id.
func BuildCategoryTree(all []model.Category) []model.Category {
	known := make(map[string]bool, len(all))
	for _, c := range all {
		known[c.ID] = true
	}
	children := make(map[string][]model.Category)
	var roots []model.Category
	for _, c := range all {
		if c.ParentID == nil || !known[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[string]bool, len(all))
	var attach func(c model.Category) model.Category
	attach = func(c model.Category) model.Category {
		visited[c.ID] = true
		for _, child := range children[c.ID] {
			if visited[child.ID] {
				continue
			}
			c.Children = append(c.Children, attach(child))
		}
		return c
	}

	tree := make([]model.Category, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, attach(r))
	}
	return tree
}

func (s *CategoryService) query(ctx context.Context, sql string, args ...any) ([]model.Category, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
