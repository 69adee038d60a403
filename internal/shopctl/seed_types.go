package shopctl

// SeedConfig is a catalog definition loaded by `shopctl seed`. References
// between entries use names, which are resolved to IDs while seeding.
type SeedConfig struct {
	Categories []CategoryDef `yaml:"categories"`
	Colors     []ColorDef    `yaml:"colors"`
	Materials  []MaterialDef `yaml:"materials"`
	AgeGroups  []AgeGroupDef `yaml:"age_groups"`
	Products   []ProductDef  `yaml:"products"`
	Coupons    []CouponDef   `yaml:"coupons"`
}

type CategoryDef struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Parent      string `yaml:"parent"`
	Description string `yaml:"description"`
	SortOrder   int    `yaml:"sort_order"`
	Inactive    bool   `yaml:"inactive"`
}

type ColorDef struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

type MaterialDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type AgeGroupDef struct {
	Label     string `yaml:"label"`
	MinAge    int    `yaml:"min_age"`
	MaxAge    int    `yaml:"max_age"`
	SortOrder int    `yaml:"sort_order"`
	Image     string `yaml:"image"` // path relative to the seed file
}

type ProductDef struct {
	Name        string       `yaml:"name"`
	Slug        string       `yaml:"slug"`
	Description string       `yaml:"description"`
	Category    string       `yaml:"category"`
	PriceCents  int64        `yaml:"price_cents"`
	SKU         string       `yaml:"sku"`
	Stock       int          `yaml:"stock"`
	Status      string       `yaml:"status"`
	ImageURL    string       `yaml:"image_url"`
	Variants    []VariantDef `yaml:"variants"`
}

type VariantDef struct {
	SKU        string `yaml:"sku"`
	Color      string `yaml:"color"`
	Material   string `yaml:"material"`
	AgeGroup   string `yaml:"age_group"`
	Size       string `yaml:"size"`
	PriceCents *int64 `yaml:"price_cents"`
	Stock      int    `yaml:"stock"`
}

type CouponDef struct {
	Code                string `yaml:"code"`
	Type                string `yaml:"type"`
	Value               int64  `yaml:"value"`
	MinOrderAmountCents int64  `yaml:"min_order_amount_cents"`
	MaxUses             int    `yaml:"max_uses"`
	StartsAt            string `yaml:"starts_at"`
	EndsAt              string `yaml:"ends_at"`
	Inactive            bool   `yaml:"inactive"`
}
