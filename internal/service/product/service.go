package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace-api/internal/domain"
	productrepo "marketplace-api/internal/repository/product"
	userrepo "marketplace-api/internal/repository/user"
)

// Service owns listing CRUD and the catalog search. Only the seller of
// a listing may update or delete it.
type Service struct {
	repo  productrepo.Repository
	users userrepo.Repository
}

func New(repo productrepo.Repository, users userrepo.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// Input carries the full set of listing fields. Update replaces every
// field except ImageURL, which is retained when empty.
type Input struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

func validateInput(in Input) error {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "is required"
	}
	if in.Description == "" {
		fields["description"] = "is required"
	}
	if !domain.ValidCategory(in.Category) {
		fields["category"] = "must be one of the known categories"
	}
	if in.Price.IsNegative() {
		fields["price"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Create stores a new listing owned by sellerID.
func (s *Service) Create(ctx context.Context, sellerID string, in Input) (*domain.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = domain.PlaceholderImageURL
	}
	return s.repo.Create(ctx, domain.Product{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		ImageURL:    imageURL,
		SellerID:    sellerID,
		CreatedAt:   time.Now().UTC(),
	})
}

// Page is one slice of the filtered catalog.
type Page struct {
	Products   []domain.Product
	Total      int
	Page       int
	TotalPages int
}

// List filters by exact category (the sentinel "all" and the empty
// string mean no filter) and case-insensitive substring search over
// title or description, then slices with 1-indexed pagination. Pages
// past the end come back empty, not as an error.
func (s *Service) List(ctx context.Context, category, search string, page, limit int) (*Page, error) {
	if category == "all" {
		category = ""
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	items, total, err := s.repo.List(ctx, productrepo.Filter{
		Category: category,
		Search:   search,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &Page{Products: items, Total: total, Page: page, TotalPages: totalPages}, nil
}

// Seller is the public slice of the owning account attached to a
// listing detail.
type Seller struct {
	Username string `json:"username"`
}

// Detail is a listing enriched with its seller.
type Detail struct {
	domain.Product
	Seller *Seller `json:"seller"`
}

// Get returns one listing with the seller's username attached. The
// seller is nil if the owning account cannot be resolved.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &Detail{Product: *p}
	if owner, err := s.users.GetByID(ctx, p.SellerID); err == nil {
		d.Seller = &Seller{Username: owner.Username}
	}
	return d, nil
}

// ListBySeller returns every listing owned by sellerID.
func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// Update replaces the listing's fields. Fails with ErrForbidden when
// caller is not the seller.
func (s *Service) Update(ctx context.Context, id, callerID string, in Input) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.SellerID != callerID {
		return nil, domain.ErrForbidden
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Category = in.Category
	existing.Price = in.Price
	if in.ImageURL != "" {
		existing.ImageURL = in.ImageURL
	}
	return s.repo.Update(ctx, *existing)
}

// Delete removes the listing unconditionally. Cart lines pointing at it
// are left behind and filtered out on read.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.SellerID != callerID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
