package core

import (
	"context"
	"fmt"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/storage"
)

// ---------- Age groups ----------

type AgeGroupService struct {
	db    DB
	store storage.Storage
}

func NewAgeGroupService(db DB, store storage.Storage) *AgeGroupService {
	return &AgeGroupService{db: db, store: store}
}

// Create stores the optional image and inserts the age group.
func (s *AgeGroupService) Create(ctx context.Context, ag *model.AgeGroup, img *Image) error {
	if ag.MinAge > ag.MaxAge {
		return invalidf("min_age %d is greater than max_age %d", ag.MinAge, ag.MaxAge)
	}
	if img != nil {
		res, err := putImage(ctx, s.store, img)
		if err != nil {
			return err
		}
		ag.ImageKey, ag.ImageURL = res.Key, res.URL
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO age_groups (id, label, min_age, max_age, image_key, image_url, sort_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ag.ID, ag.Label, ag.MinAge, ag.MaxAge, ag.ImageKey, ag.ImageURL, ag.SortOrder, ag.CreatedAt, ag.UpdatedAt,
	)
	if err != nil {
		dropImage(ctx, s.store, ag.ImageKey)
		return dbError(err, "create age group")
	}
	return nil
}

func (s *AgeGroupService) GetByID(ctx context.Context, id string) (*model.AgeGroup, error) {
	var ag model.AgeGroup
	err := s.db.QueryRow(ctx,
		`SELECT id, label, min_age, max_age, image_key, image_url, sort_order, created_at, updated_at
		 FROM age_groups WHERE id = $1`, id,
	).Scan(&ag.ID, &ag.Label, &ag.MinAge, &ag.MaxAge, &ag.ImageKey, &ag.ImageURL, &ag.SortOrder, &ag.CreatedAt, &ag.UpdatedAt)
	if err != nil {
		return nil, dbError(err, "get age group %s", id)
	}
	return &ag, nil
}

func (s *AgeGroupService) List(ctx context.Context, params request.ListParams) ([]model.AgeGroup, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`label ILIKE $%d`, "%"+params.Search+"%")
	}

	total, err := countRows(ctx, s.db, "age_groups", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count age groups: %w", err)
	}

	suffix, args := c.page(params, map[string]string{
		"label": "label", "min_age": "min_age", "sort_order": "sort_order", "created_at": "created_at",
	}, "sort_order")
	rows, err := s.db.Query(ctx,
		`SELECT id, label, min_age, max_age, image_key, image_url, sort_order, created_at, updated_at FROM age_groups`+
			c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list age groups: %w", err)
	}
	defer rows.Close()

	var groups []model.AgeGroup
	for rows.Next() {
		var ag model.AgeGroup
		if err := rows.Scan(&ag.ID, &ag.Label, &ag.MinAge, &ag.MaxAge, &ag.ImageKey, &ag.ImageURL,
			&ag.SortOrder, &ag.CreatedAt, &ag.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan age group: %w", err)
		}
		groups = append(groups, ag)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate age groups: %w", err)
	}
	return groups, total, nil
}

// Update saves ag. When img is set the stored image is replaced and the
// previous one deleted.
func (s *AgeGroupService) Update(ctx context.Context, ag *model.AgeGroup, img *Image) error {
	if ag.MinAge > ag.MaxAge {
		return invalidf("min_age %d is greater than max_age %d", ag.MinAge, ag.MaxAge)
	}
	oldKey := ""
	if img != nil {
		res, err := putImage(ctx, s.store, img)
		if err != nil {
			return err
		}
		oldKey = ag.ImageKey
		ag.ImageKey, ag.ImageURL = res.Key, res.URL
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE age_groups SET label = $1, min_age = $2, max_age = $3, image_key = $4, image_url = $5,
		 sort_order = $6, updated_at = now() WHERE id = $7`,
		ag.Label, ag.MinAge, ag.MaxAge, ag.ImageKey, ag.ImageURL, ag.SortOrder, ag.ID,
	)
	if err != nil {
		err = dbError(err, "update age group %s", ag.ID)
	} else {
		err = notFound(tag, "update age group %s", ag.ID)
	}
	if err != nil {
		if img != nil {
			dropImage(ctx, s.store, ag.ImageKey)
		}
		return err
	}
	dropImage(ctx, s.store, oldKey)
	return nil
}

func (s *AgeGroupService) Delete(ctx context.Context, id string) error {
	var key string
	err := s.db.QueryRow(ctx, `DELETE FROM age_groups WHERE id = $1 RETURNING image_key`, id).Scan(&key)
	if err != nil {
		return dbError(err, "delete age group %s", id)
	}
	dropImage(ctx, s.store, key)
	return nil
}

// ---------- Colors ----------

type ColorService struct {
	db DB
}

func NewColorService(db DB) *ColorService {
	return &ColorService{db: db}
}

func (s *ColorService) Create(ctx context.Context, c *model.Color) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO colors (id, name, hex, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Hex, c.CreatedAt,
	)
	if err != nil {
		return dbError(err, "create color")
	}
	return nil
}

func (s *ColorService) List(ctx context.Context, params request.ListParams) ([]model.Color, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`(name ILIKE $%[1]d OR hex ILIKE $%[1]d)`, "%"+params.Search+"%")
	}

	total, err := countRows(ctx, s.db, "colors", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count colors: %w", err)
	}

	suffix, args := c.page(params, map[string]string{"name": "name", "created_at": "created_at"}, "name")
	rows, err := s.db.Query(ctx, `SELECT id, name, hex, created_at FROM colors`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()

	var colors []model.Color
	for rows.Next() {
		var col model.Color
		if err := rows.Scan(&col.ID, &col.Name, &col.Hex, &col.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan color: %w", err)
		}
		colors = append(colors, col)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate colors: %w", err)
	}
	return colors, total, nil
}

func (s *ColorService) Update(ctx context.Context, c *model.Color) error {
	tag, err := s.db.Exec(ctx, `UPDATE colors SET name = $1, hex = $2 WHERE id = $3`, c.Name, c.Hex, c.ID)
	if err != nil {
		return dbError(err, "update color %s", c.ID)
	}
	return notFound(tag, "update color %s", c.ID)
}

func (s *ColorService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM colors WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete color %s", id)
	}
	return notFound(tag, "delete color %s", id)
}

// ---------- Materials ----------

type MaterialService struct {
	db DB
}

func NewMaterialService(db DB) *MaterialService {
	return &MaterialService{db: db}
}

func (s *MaterialService) Create(ctx context.Context, m *model.Material) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO materials (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.Description, m.CreatedAt,
	)
	if err != nil {
		return dbError(err, "create material")
	}
	return nil
}

func (s *MaterialService) List(ctx context.Context, params request.ListParams) ([]model.Material, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`name ILIKE $%d`, "%"+params.Search+"%")
	}

	total, err := countRows(ctx, s.db, "materials", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}

	suffix, args := c.page(params, map[string]string{"name": "name", "created_at": "created_at"}, "name")
	rows, err := s.db.Query(ctx, `SELECT id, name, description, created_at FROM materials`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var materials []model.Material
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, total, nil
}

func (s *MaterialService) Update(ctx context.Context, m *model.Material) error {
	tag, err := s.db.Exec(ctx, `UPDATE materials SET name = $1, description = $2 WHERE id = $3`, m.Name, m.Description, m.ID)
	if err != nil {
		return dbError(err, "update material %s", m.ID)
	}
	return notFound(tag, "update material %s", m.ID)
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete material %s", id)
	}
	return notFound(tag, "delete material %s", id)
}
