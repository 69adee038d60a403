package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/storage"
)

const bannerColumns = `id, title, campaign, image_key, image_url, link_url, position, active,
	starts_at, ends_at, created_at, updated_at`

func scanBanner(row pgx.Row, b *model.Banner) error {
	return row.Scan(&b.ID, &b.Title, &b.Campaign, &b.ImageKey, &b.ImageURL, &b.LinkURL, &b.Position,
		&b.Active, &b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt)
}

type BannerService struct {
	db    DB
	store storage.Storage
}

func NewBannerService(db DB, store storage.Storage) *BannerService {
	return &BannerService{db: db, store: store}
}

// Create stores the banner image and inserts the banner.
func (s *BannerService) Create(ctx context.Context, b *model.Banner, img *Image) error {
	if img == nil {
		return invalidf("banner image is required")
	}
	res, err := putImage(ctx, s.store, img)
	if err != nil {
		return err
	}
	b.ImageKey, b.ImageURL = res.Key, res.URL

	_, err = s.db.Exec(ctx,
		`INSERT INTO banners (id, title, campaign, image_key, image_url, link_url, position, active,
		 starts_at, ends_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.Title, b.Campaign, b.ImageKey, b.ImageURL, b.LinkURL, b.Position, b.Active,
		b.StartsAt, b.EndsAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		dropImage(ctx, s.store, b.ImageKey)
		return dbError(err, "create banner")
	}
	return nil
}

func (s *BannerService) GetByID(ctx context.Context, id string) (*model.Banner, error) {
	var b model.Banner
	if err := scanBanner(s.db.QueryRow(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id), &b); err != nil {
		return nil, dbError(err, "get banner %s", id)
	}
	return &b, nil
}

// List returns one page of banners. Status is "active" or "inactive";
// extra filter campaign.
func (s *BannerService) List(ctx context.Context, params request.ListParams) ([]model.Banner, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`(title ILIKE $%[1]d OR campaign ILIKE $%[1]d)`, "%"+params.Search+"%")
	}
	switch params.Status {
	case "active":
		c.raw(`active`)
	case "inactive":
		c.raw(`NOT active`)
	}
	if v := params.Filter("campaign"); v != "" {
		c.add(`campaign = $%d`, v)
	}

	total, err := countRows(ctx, s.db, "banners", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count banners: %w", err)
	}

	suffix, args := c.page(params, map[string]string{
		"title": "title", "campaign": "campaign", "position": "position", "created_at": "created_at",
	}, "created_at")
	banners, err := s.query(ctx, `SELECT `+bannerColumns+` FROM banners`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// Grouped returns all banners grouped by campaign. Campaigns are ordered by
// name and banners within a campaign by position.
func (s *BannerService) Grouped(ctx context.Context) ([]model.BannerGroup, error) {
	banners, err := s.query(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY campaign, position, created_at, id`)
	if err != nil {
		return nil, err
	}
	groups := listing.GroupBy(banners, func(b model.Banner) string { return b.Campaign })
	out := make([]model.BannerGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.BannerGroup{Campaign: g.Key, Banners: g.Items})
	}
	return out, nil
}

// Update saves b, replacing its image when img is set.
func (s *BannerService) Update(ctx context.Context, b *model.Banner, img *Image) error {
	oldKey := ""
	if img != nil {
		res, err := putImage(ctx, s.store, img)
		if err != nil {
			return err
		}
		oldKey = b.ImageKey
		b.ImageKey, b.ImageURL = res.Key, res.URL
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE banners SET title = $1, campaign = $2, image_key = $3, image_url = $4, link_url = $5,
		 position = $6, active = $7, starts_at = $8, ends_at = $9, updated_at = now() WHERE id = $10`,
		b.Title, b.Campaign, b.ImageKey, b.ImageURL, b.LinkURL, b.Position, b.Active, b.StartsAt, b.EndsAt, b.ID,
	)
	if err != nil {
		err = dbError(err, "update banner %s", b.ID)
	} else {
		err = notFound(tag, "update banner %s", b.ID)
	}
	if err != nil {
		if img != nil {
			dropImage(ctx, s.store, b.ImageKey)
		}
		return err
	}
	dropImage(ctx, s.store, oldKey)
	return nil
}

// Delete removes the banner and its stored image.
func (s *BannerService) Delete(ctx context.Context, id string) error {
	var key string
	if err := s.db.QueryRow(ctx, `DELETE FROM banners WHERE id = $1 RETURNING image_key`, id).Scan(&key); err != nil {
		return dbError(err, "delete banner %s", id)
	}
	if s.store != nil && key != "" {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete banner %s image: %w", id, err)
		}
	}
	return nil
}

func (s *BannerService) query(ctx context.Context, sql string, args ...any) ([]model.Banner, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var banners []model.Banner
	for rows.Next() {
		var b model.Banner
		if err := scanBanner(rows, &b); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banners: %w", err)
	}
	return banners, nil
}
