package collection

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/diwise/mailbox-sdk/pkg/sdk/client"
	sdkerrors "github.com/diwise/mailbox-sdk/pkg/sdk/errors"
	"github.com/diwise/mailbox-sdk/pkg/sdk/model"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var ErrInvalidQuery = fmt.Errorf("invalid query")

// Collection queries the instances of one model kind. Adding constraints
// returns a new collection and leaves the receiver as it was.
type Collection[T any] struct {
	kind  *model.Kind
	api   model.API
	wrap  func(*model.Model) T
	query Query
}

func New[T any](kind *model.Kind, api model.API, wrap func(*model.Model) T) *Collection[T] {
	return &Collection[T]{
		kind: kind,
		api:  api,
		wrap: wrap,
	}
}

func (c *Collection[T]) Kind() *model.Kind {
	return c.kind
}

func (c *Collection[T]) Query() Query {
	return c.query
}

func (c *Collection[T]) With(decorators ...QueryDecoratorFunc) *Collection[T] {
	clone := &Collection[T]{
		kind:  c.kind,
		api:   c.api,
		wrap:  c.wrap,
		query: c.query.clone(),
	}

	for _, decorate := range decorators {
		decorate(&clone.query)
	}

	return clone
}

func (c *Collection[T]) Where(filters map[string]any) *Collection[T] {
	return c.With(Where(filters))
}

func (c *Collection[T]) Search(text string) *Collection[T] {
	return c.With(Search(text))
}

func (c *Collection[T]) Limit(count int) *Collection[T] {
	return c.With(Limit(count))
}

func (c *Collection[T]) Offset(count int) *Collection[T] {
	return c.With(Offset(count))
}

func (c *Collection[T]) ResourcesPath() string {
	return c.kind.Path(c.api)
}

// New creates an unpersisted instance that can be saved later
func (c *Collection[T]) New(values map[string]any) (T, error) {
	m, err := c.kind.New(c.api, values)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.wrap(m), nil
}

func (c *Collection[T]) Create(ctx context.Context, values map[string]any) (T, error) {
	var zero T

	m, err := c.kind.New(c.api, values)
	if err != nil {
		return zero, err
	}

	if err = m.Save(ctx); err != nil {
		return zero, err
	}

	return c.wrap(m), nil
}

func (c *Collection[T]) Find(ctx context.Context, id string) (T, error) {
	var zero T

	if err := c.kind.Require(model.OpShow, c.kind); err != nil {
		return zero, err
	}

	result, err := c.execute(ctx, c.ResourcesPath()+"/"+url.PathEscape(id), nil)
	if err != nil {
		return zero, fmt.Errorf("failed to find %s %s: %w", c.kind.Name, id, err)
	}

	data, ok := result.(map[string]any)
	if !ok {
		return zero, fmt.Errorf("unexpected %T in response to %s request (%w)", result, c.kind.Name, sdkerrors.ErrBadResponse)
	}

	m, err := c.kind.FromHash(ctx, c.api, data)
	if err != nil {
		return zero, err
	}

	return c.wrap(m), nil
}

// Each calls callback for every instance that matches the query, one page at a
// time. Iteration stops at the first error returned by callback.
func (c *Collection[T]) Each(ctx context.Context, callback func(T) error) error {
	if err := c.requireListing(); err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	offset := c.query.offset
	remaining := c.query.limit

	for {
		pageSize := DefaultPageSize
		if c.query.limit > 0 && remaining < pageSize {
			pageSize = remaining
		}

		log.Debug("fetching page", slog.String("model", c.kind.Name), slog.Int("limit", pageSize), slog.Int("offset", offset))

		result, err := c.execute(ctx, c.listPath(), c.query.Params(pageSize, offset))
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", c.kind.Name, err)
		}

		page, ok := result.([]any)
		if result != nil && !ok {
			return fmt.Errorf("unexpected %T in response to %s list request (%w)", result, c.kind.Name, sdkerrors.ErrBadResponse)
		}

		for _, item := range page {
			data, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("unexpected %T in %s list (%w)", item, c.kind.Name, sdkerrors.ErrBadResponse)
			}

			m, err := c.kind.FromHash(ctx, c.api, data)
			if err != nil {
				return err
			}

			if err = callback(c.wrap(m)); err != nil {
				return err
			}
		}

		offset += len(page)
		remaining -= len(page)

		if len(page) < pageSize || (c.query.limit > 0 && remaining <= 0) {
			return nil
		}
	}
}

func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	items := []T{}

	err := c.Each(ctx, func(t T) error {
		items = append(items, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// First returns the first matching instance. The boolean is false when
// nothing matched.
func (c *Collection[T]) First(ctx context.Context) (T, bool, error) {
	var first T

	items, err := c.Limit(1).All(ctx)
	if err != nil || len(items) == 0 {
		return first, false, err
	}

	return items[0], true, nil
}

func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	if err := c.kind.Require(model.OpCount, c.kind); err != nil {
		return 0, err
	}

	if err := c.requireConstraints(); err != nil {
		return 0, err
	}

	q := c.query.clone()
	q.view = ViewCount

	result, err := c.execute(ctx, c.listPath(), q.Params(0, q.offset))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.kind.Name, err)
	}

	data, ok := result.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("unexpected %T in response to %s count request (%w)", result, c.kind.Name, sdkerrors.ErrBadResponse)
	}

	count, ok := data["count"].(float64)
	if !ok {
		return 0, fmt.Errorf("count missing from %s count response (%w)", c.kind.Name, sdkerrors.ErrBadResponse)
	}

	return int(count), nil
}

func (c *Collection[T]) IDs(ctx context.Context) ([]string, error) {
	if err := c.kind.Require(model.OpListIDs, c.kind); err != nil {
		return nil, err
	}

	if err := c.requireConstraints(); err != nil {
		return nil, err
	}

	q := c.query.clone()
	q.view = ViewIDs

	result, err := c.execute(ctx, c.listPath(), q.Params(q.limit, q.offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s ids: %w", c.kind.Name, err)
	}

	list, ok := result.([]any)
	if result != nil && !ok {
		return nil, fmt.Errorf("unexpected %T in response to %s ids request (%w)", result, c.kind.Name, sdkerrors.ErrBadResponse)
	}

	ids := make([]string, 0, len(list))
	for _, v := range list {
		id, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected %T in %s ids (%w)", v, c.kind.Name, sdkerrors.ErrBadResponse)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (c *Collection[T]) requireListing() error {
	if err := c.kind.Require(model.OpList, c.kind); err != nil {
		return err
	}
	return c.requireConstraints()
}

func (c *Collection[T]) requireConstraints() error {
	if c.query.limit < 0 || c.query.offset < 0 {
		return fmt.Errorf("%s query with limit %d and offset %d (%w)", c.kind.Name, c.query.limit, c.query.offset, ErrInvalidQuery)
	}

	if c.query.Filtered() {
		if err := c.kind.Require(model.OpFilter, c.kind); err != nil {
			return err
		}
	}

	if c.query.Searching() {
		if err := c.kind.Require(model.OpSearch, c.kind); err != nil {
			return err
		}
	}

	return nil
}

func (c *Collection[T]) listPath() string {
	if c.query.Searching() {
		return c.ResourcesPath() + "/search"
	}
	return c.ResourcesPath()
}

func (c *Collection[T]) execute(ctx context.Context, path string, query map[string]string) (any, error) {
	return c.api.Execute(ctx, client.Request{
		Method:     http.MethodGet,
		Path:       path,
		Query:      query,
		AuthMethod: c.kind.Auth(),
	})
}
