package shopctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edvin/shopadmin/internal/model"
)

// LoadSeedConfig parses a seed file. Relative image paths are resolved
// against the file's directory.
func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var cfg SeedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	base := filepath.Dir(path)
	for i := range cfg.AgeGroups {
		img := cfg.AgeGroups[i].Image
		if img != "" && !filepath.IsAbs(img) {
			cfg.AgeGroups[i].Image = filepath.Join(base, img)
		}
	}
	return &cfg, nil
}

// Seeder creates a catalog through the API. Entries that already exist are
// skipped, so a seed file can be applied repeatedly.
type Seeder struct {
	client *Client
	out    io.Writer

	categories map[string]string // name -> ID
	colors     map[string]string
	materials  map[string]string
	ageGroups  map[string]string // label -> ID
}

func NewSeeder(client *Client, out io.Writer) *Seeder {
	return &Seeder{client: client, out: out}
}

func (s *Seeder) Seed(ctx context.Context, cfg *SeedConfig) error {
	if err := s.seedCategories(ctx, cfg.Categories); err != nil {
		return err
	}
	if err := s.seedColors(ctx, cfg.Colors); err != nil {
		return err
	}
	if err := s.seedMaterials(ctx, cfg.Materials); err != nil {
		return err
	}
	if err := s.seedAgeGroups(ctx, cfg.AgeGroups); err != nil {
		return err
	}
	if err := s.seedProducts(ctx, cfg.Products); err != nil {
		return err
	}
	return s.seedCoupons(ctx, cfg.Coupons)
}

func (s *Seeder) seedCategories(ctx context.Context, defs []CategoryDef) error {
	existing, err := FetchAll[model.Category](ctx, s.client, "/categories", nil)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	s.categories = make(map[string]string, len(existing))
	for _, c := range existing {
		s.categories[c.Name] = c.ID
	}

	for _, d := range defs {
		if id, ok := s.categories[d.Name]; ok {
			fmt.Fprintf(s.out, "Category %q: exists (%s, skipping)\n", d.Name, id)
			continue
		}
		active := !d.Inactive
		body := map[string]any{
			"name":        d.Name,
			"slug":        d.Slug,
			"description": d.Description,
			"sort_order":  d.SortOrder,
			"active":      active,
		}
		if d.Parent != "" {
			parentID, ok := s.categories[d.Parent]
			if !ok {
				return fmt.Errorf("category %q: unknown parent %q", d.Name, d.Parent)
			}
			body["parent_id"] = parentID
		}
		var created model.Category
		if err := s.client.Post(ctx, "/categories", body, &created); err != nil {
			return fmt.Errorf("create category %q: %w", d.Name, err)
		}
		s.categories[d.Name] = created.ID
		fmt.Fprintf(s.out, "Category %q: %s created\n", d.Name, created.ID)
	}
	return nil
}

func (s *Seeder) seedColors(ctx context.Context, defs []ColorDef) error {
	existing, err := FetchAll[model.Color](ctx, s.client, "/colors", nil)
	if err != nil {
		return fmt.Errorf("list colors: %w", err)
	}
	s.colors = make(map[string]string, len(existing))
	for _, c := range existing {
		s.colors[c.Name] = c.ID
	}

	for _, d := range defs {
		if id, ok := s.colors[d.Name]; ok {
			fmt.Fprintf(s.out, "Color %q: exists (%s, skipping)\n", d.Name, id)
			continue
		}
		var created model.Color
		body := map[string]any{"name": d.Name, "hex": d.Hex}
		if err := s.client.Post(ctx, "/colors", body, &created); err != nil {
			return fmt.Errorf("create color %q: %w", d.Name, err)
		}
		s.colors[d.Name] = created.ID
		fmt.Fprintf(s.out, "Color %q: %s created\n", d.Name, created.ID)
	}
	return nil
}

func (s *Seeder) seedMaterials(ctx context.Context, defs []MaterialDef) error {
	existing, err := FetchAll[model.Material](ctx, s.client, "/materials", nil)
	if err != nil {
		return fmt.Errorf("list materials: %w", err)
	}
	s.materials = make(map[string]string, len(existing))
	for _, m := range existing {
		s.materials[m.Name] = m.ID
	}

	for _, d := range defs {
		if id, ok := s.materials[d.Name]; ok {
			fmt.Fprintf(s.out, "Material %q: exists (%s, skipping)\n", d.Name, id)
			continue
		}
		var created model.Material
		body := map[string]any{"name": d.Name, "description": d.Description}
		if err := s.client.Post(ctx, "/materials", body, &created); err != nil {
			return fmt.Errorf("create material %q: %w", d.Name, err)
		}
		s.materials[d.Name] = created.ID
		fmt.Fprintf(s.out, "Material %q: %s created\n", d.Name, created.ID)
	}
	return nil
}

func (s *Seeder) seedAgeGroups(ctx context.Context, defs []AgeGroupDef) error {
	existing, err := FetchAll[model.AgeGroup](ctx, s.client, "/ages", nil)
	if err != nil {
		return fmt.Errorf("list age groups: %w", err)
	}
	s.ageGroups = make(map[string]string, len(existing))
	for _, ag := range existing {
		s.ageGroups[ag.Label] = ag.ID
	}

	for _, d := range defs {
		if id, ok := s.ageGroups[d.Label]; ok {
			fmt.Fprintf(s.out, "Age group %q: exists (%s, skipping)\n", d.Label, id)
			continue
		}
		fields := map[string]string{
			"label":      d.Label,
			"min_age":    strconv.Itoa(d.MinAge),
			"max_age":    strconv.Itoa(d.MaxAge),
			"sort_order": strconv.Itoa(d.SortOrder),
		}
		var created model.AgeGroup
		if err := s.client.PostMultipart(ctx, "/ages", fields, d.Image, &created); err != nil {
			return fmt.Errorf("create age group %q: %w", d.Label, err)
		}
		s.ageGroups[d.Label] = created.ID
		fmt.Fprintf(s.out, "Age group %q: %s created\n", d.Label, created.ID)
	}
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context, defs []ProductDef) error {
	existing, err := FetchAll[model.Product](ctx, s.client, "/products", nil)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	skus := make(map[string]string, len(existing))
	for _, p := range existing {
		skus[strings.ToUpper(p.SKU)] = p.ID
	}

	for _, d := range defs {
		if id, ok := skus[strings.ToUpper(d.SKU)]; ok {
			fmt.Fprintf(s.out, "Product %q: exists (%s, skipping)\n", d.Name, id)
			continue
		}
		body := map[string]any{
			"name":        d.Name,
			"slug":        d.Slug,
			"description": d.Description,
			"price_cents": d.PriceCents,
			"sku":         d.SKU,
			"stock":       d.Stock,
			"status":      d.Status,
			"image_url":   d.ImageURL,
		}
		if d.Category != "" {
			id, ok := s.categories[d.Category]
			if !ok {
				return fmt.Errorf("product %q: unknown category %q", d.Name, d.Category)
			}
			body["category_id"] = id
		}

		variants := make([]map[string]any, 0, len(d.Variants))
		for _, v := range d.Variants {
			vb := map[string]any{"sku": v.SKU, "size": v.Size, "stock": v.Stock}
			if v.PriceCents != nil {
				vb["price_cents"] = *v.PriceCents
			}
			refs := []struct {
				field, name, kind string
				ids               map[string]string
			}{
				{"color_id", v.Color, "color", s.colors},
				{"material_id", v.Material, "material", s.materials},
				{"age_group_id", v.AgeGroup, "age group", s.ageGroups},
			}
			for _, ref := range refs {
				if ref.name == "" {
					continue
				}
				id, ok := ref.ids[ref.name]
				if !ok {
					return fmt.Errorf("variant %q: unknown %s %q", v.SKU, ref.kind, ref.name)
				}
				vb[ref.field] = id
			}
			variants = append(variants, vb)
		}
		if len(variants) > 0 {
			body["variants"] = variants
		}

		var created model.Product
		if err := s.client.Post(ctx, "/products", body, &created); err != nil {
			return fmt.Errorf("create product %q: %w", d.Name, err)
		}
		skus[strings.ToUpper(d.SKU)] = created.ID
		fmt.Fprintf(s.out, "Product %q: %s created (%d variants)\n", d.Name, created.ID, len(variants))
	}
	return nil
}

func (s *Seeder) seedCoupons(ctx context.Context, defs []CouponDef) error {
	existing, err := FetchAll[model.Coupon](ctx, s.client, "/user/coupons", nil)
	if err != nil {
		return fmt.Errorf("list coupons: %w", err)
	}
	codes := make(map[string]bool, len(existing))
	for _, c := range existing {
		codes[strings.ToUpper(c.Code)] = true
	}

	for _, d := range defs {
		code := strings.ToUpper(d.Code)
		if codes[code] {
			fmt.Fprintf(s.out, "Coupon %q: exists (skipping)\n", code)
			continue
		}
		body, err := CouponBody(d)
		if err != nil {
			return fmt.Errorf("coupon %q: %w", d.Code, err)
		}
		var created model.Coupon
		if err := s.client.Post(ctx, "/user/coupons", body, &created); err != nil {
			return fmt.Errorf("create coupon %q: %w", d.Code, err)
		}
		codes[code] = true
		fmt.Fprintf(s.out, "Coupon %q: %s created\n", created.Code, created.ID)
	}
	return nil
}

// CouponBody builds the create request for a coupon. Dates are RFC 3339 or
// YYYY-MM-DD.
func CouponBody(d CouponDef) (map[string]any, error) {
	body := map[string]any{
		"code":                   d.Code,
		"type":                   d.Type,
		"value":                  d.Value,
		"min_order_amount_cents": d.MinOrderAmountCents,
		"max_uses":               d.MaxUses,
		"active":                 !d.Inactive,
	}
	for field, raw := range map[string]string{"starts_at": d.StartsAt, "ends_at": d.EndsAt} {
		if raw == "" {
			continue
		}
		t, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", field, err)
		}
		body[field] = t
	}
	return body, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
