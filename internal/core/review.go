package core

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/moderation"
)

const reviewColumns = `id, product_id, customer_id, rating, comment, status, flagged, flag_reasons, created_at, updated_at`

var reviewSortColumns = map[string]string{
	"rating":     "rating",
	"status":     "status",
	"created_at": "created_at",
}

func scanReview(row pgx.Row, r *model.Review) error {
	err := row.Scan(&r.ID, &r.ProductID, &r.CustomerID, &r.Rating, &r.Comment, &r.Status, &r.Flagged,
		&r.FlagReasons, &r.CreatedAt, &r.UpdatedAt)
	if err == nil && r.FlagReasons == nil {
		r.FlagReasons = []string{}
	}
	return err
}

// ScanResult summarizes a moderation pass over all reviews.
type ScanResult struct {
	Scanned int `json:"scanned"`
	Flagged int `json:"flagged"`
	Changed int `json:"changed"`
}

type ReviewService struct {
	db      DB
	flagger *moderation.Flagger
}

func NewReviewService(db DB, flagger *moderation.Flagger) *ReviewService {
	if flagger == nil {
		flagger = moderation.NewFlagger(moderation.DefaultKeywords)
	}
	return &ReviewService{db: db, flagger: flagger}
}

// Create flags the review against the keyword list and inserts it.
func (s *ReviewService) Create(ctx context.Context, r *model.Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return invalidf("rating %d is outside 1..5", r.Rating)
	}
	if r.Status == "" {
		r.Status = model.ReviewPending
	}
	r.FlagReasons = s.Check(r.Comment)
	r.Flagged = len(r.FlagReasons) > 0

	_, err := s.db.Exec(ctx,
		`INSERT INTO reviews (id, product_id, customer_id, rating, comment, status, flagged, flag_reasons, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.ID, r.ProductID, r.CustomerID, r.Rating, r.Comment, r.Status, r.Flagged, r.FlagReasons, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create review")
	}
	return nil
}

func (s *ReviewService) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var r model.Review
	if err := scanReview(s.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id), &r); err != nil {
		return nil, dbError(err, "get review %s", id)
	}
	return &r, nil
}

// List returns one page of reviews. Extra filters: flagged (true/false),
// product_id, min_rating. Search matches the comment.
func (s *ReviewService) List(ctx context.Context, params request.ListParams) ([]model.Review, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`comment ILIKE $%d`, "%"+params.Search+"%")
	}
	if params.Status != "" {
		c.add(`status = $%d`, params.Status)
	}
	if v := params.Filter("flagged"); v != "" {
		flagged, err := strconv.ParseBool(v)
		if err != nil {
			return nil, 0, invalidf("flagged must be true or false")
		}
		c.add(`flagged = $%d`, flagged)
	}
	if v := params.Filter("product_id"); v != "" {
		c.add(`product_id = $%d`, v)
	}
	if v := params.Filter("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, 0, invalidf("min_rating must be a number")
		}
		c.add(`rating >= $%d`, n)
	}

	total, err := countRows(ctx, s.db, "reviews", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	suffix, args := c.page(params, reviewSortColumns, "created_at")
	rows, err := s.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var r model.Review
		if err := scanReview(rows, &r); err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, total, nil
}

func (s *ReviewService) UpdateStatus(ctx context.Context, id, status string) (*model.Review, error) {
	var r model.Review
	err := scanReview(s.db.QueryRow(ctx,
		`UPDATE reviews SET status = $1, updated_at = now() WHERE id = $2 RETURNING `+reviewColumns,
		status, id,
	), &r)
	if err != nil {
		return nil, dbError(err, "update review %s status", id)
	}
	return &r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete review %s", id)
	}
	return notFound(tag, "delete review %s", id)
}

// Check returns the keywords that text matches, never nil.
func (s *ReviewService) Check(text string) []string {
	matched := s.flagger.Check(text)
	if matched == nil {
		return []string{}
	}
	return matched
}

// Scan re-runs keyword flagging over every review and stores the reviews
// whose result changed.
func (s *ReviewService) Scan(ctx context.Context) (*ScanResult, error) {
	type pending struct {
		id      string
		flagged bool
		reasons []string
	}

	rows, err := s.db.Query(ctx, `SELECT id, comment, flagged, flag_reasons FROM reviews ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("scan reviews: %w", err)
	}

	result := &ScanResult{}
	var updates []pending
	for rows.Next() {
		var (
			id, comment string
			flagged     bool
			reasons     []string
		)
		if err := rows.Scan(&id, &comment, &flagged, &reasons); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan review: %w", err)
		}
		result.Scanned++
		matched := s.Check(comment)
		if len(matched) > 0 {
			result.Flagged++
		}
		if flagged != (len(matched) > 0) || !slices.Equal(reasons, matched) {
			updates = append(updates, pending{id: id, flagged: len(matched) > 0, reasons: matched})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	for _, u := range updates {
		if _, err := s.db.Exec(ctx,
			`UPDATE reviews SET flagged = $1, flag_reasons = $2, updated_at = now() WHERE id = $3`,
			u.flagged, u.reasons, u.id,
		); err != nil {
			return nil, fmt.Errorf("update review %s flags: %w", u.id, err)
		}
		result.Changed++
	}
	return result, nil
}
