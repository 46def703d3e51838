package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNameRequired = errors.New("name is required")
	ErrNotFound     = errors.New("coffee not found")
)

var tracer = otel.Tracer("coffeeapi/internal/service")

// UpdateOutcome tells whether Update replaced an existing coffee or fell back to creating one.
type UpdateOutcome int

const (
	OutcomeUpdated UpdateOutcome = iota + 1
	OutcomeCreated
)

func (o UpdateOutcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeCreated:
		return "created"
	default:
		return "unknown"
	}
}

// UpdateResult carries the stored coffee and how it got there.
type UpdateResult struct {
	Coffee  *model.Coffee
	Outcome UpdateOutcome
}

// CoffeeService defines the use cases for the coffee collection.
type CoffeeService interface {
	// List returns every coffee in store order.
	List(ctx context.Context) ([]model.Coffee, error)

	// Get returns a single coffee by its ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Coffee, error)

	// Create stores a coffee, generating its ID when empty.
	Create(ctx context.Context, c *model.Coffee) (*model.Coffee, error)

	// Update replaces the name of coffee id. When id is unknown it stores c instead
	// (upsert-as-create). Outcome is Created unless c's own id already named a
	// stored coffee, in which case that coffee was replaced and Outcome is Updated.
	Update(ctx context.Context, id string, c *model.Coffee) (*UpdateResult, error)

	// Delete removes a coffee. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Seed stores one coffee per name if the store is empty and returns how many were added.
	Seed(ctx context.Context, names []string) (int, error)
}

type coffeeService struct {
	repo repository.CoffeeRepository
}

// NewCoffeeService constructs a CoffeeService over any repository backend.
func NewCoffeeService(repo repository.CoffeeRepository) CoffeeService {
	return &coffeeService{repo: repo}
}

func (s *coffeeService) List(ctx context.Context) ([]model.Coffee, error) {
	ctx, span := tracer.Start(ctx, "CoffeeService.List")
	defer span.End()

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	if items == nil {
		items = []model.Coffee{}
	}
	span.SetAttributes(attribute.Int("coffee.count", len(items)))
	return items, nil
}

func (s *coffeeService) Get(ctx context.Context, id string) (*model.Coffee, error) {
	ctx, span := tracer.Start(ctx, "CoffeeService.Get", trace.WithAttributes(attribute.String("coffee.id", id)))
	defer span.End()

	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fail(span, err)
	}
	return c, nil
}

func (s *coffeeService) Create(ctx context.Context, c *model.Coffee) (*model.Coffee, error) {
	ctx, span := tracer.Start(ctx, "CoffeeService.Create")
	defer span.End()

	stored, err := s.create(ctx, c)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.String("coffee.id", stored.ID))
	return stored, nil
}

func (s *coffeeService) create(ctx context.Context, c *model.Coffee) (*model.Coffee, error) {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return nil, ErrNameRequired
	}
	rec := *c
	if rec.ID == "" {
		rec.ID = model.NewID()
	}
	stored, err := s.repo.Save(ctx, &rec)
	if err != nil {
		return nil, fmt.Errorf("save coffee: %w", err)
	}
	return stored, nil
}

func (s *coffeeService) Update(ctx context.Context, id string, c *model.Coffee) (*UpdateResult, error) {
	ctx, span := tracer.Start(ctx, "CoffeeService.Update", trace.WithAttributes(attribute.String("coffee.id", id)))
	defer span.End()

	if id == "" {
		return nil, ErrIDRequired
	}
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return nil, ErrNameRequired
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fail(span, fmt.Errorf("check coffee: %w", err))
	}

	if !exists {
		// The fallback stores c under its own id, which may already name another record.
		outcome := OutcomeCreated
		if c.ID != "" && c.ID != id {
			taken, err := s.repo.ExistsByID(ctx, c.ID)
			if err != nil {
				return nil, fail(span, fmt.Errorf("check coffee: %w", err))
			}
			if taken {
				outcome = OutcomeUpdated
			}
		}
		stored, err := s.create(ctx, c)
		if err != nil {
			return nil, fail(span, err)
		}
		span.SetAttributes(attribute.String("coffee.outcome", outcome.String()))
		return &UpdateResult{Coffee: stored, Outcome: outcome}, nil
	}

	stored, err := s.repo.Save(ctx, &model.Coffee{ID: id, Name: c.Name})
	if err != nil {
		return nil, fail(span, fmt.Errorf("save coffee: %w", err))
	}
	span.SetAttributes(attribute.String("coffee.outcome", OutcomeUpdated.String()))
	return &UpdateResult{Coffee: stored, Outcome: OutcomeUpdated}, nil
}

func (s *coffeeService) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "CoffeeService.Delete", trace.WithAttributes(attribute.String("coffee.id", id)))
	defer span.End()

	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fail(span, err)
	}
	return nil
}

func (s *coffeeService) Seed(ctx context.Context, names []string) (int, error) {
	ctx, span := tracer.Start(ctx, "CoffeeService.Seed")
	defer span.End()

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, fail(span, err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	n := 0
	for _, name := range names {
		c := model.NewCoffee(name)
		if _, err := s.repo.Save(ctx, &c); err != nil {
			return n, fail(span, fmt.Errorf("seed %q: %w", name, err))
		}
		n++
	}
	span.SetAttributes(attribute.Int("coffee.seeded", n))
	return n, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
