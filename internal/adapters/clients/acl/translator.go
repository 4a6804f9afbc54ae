package acl

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/artofday/internal/adapters/clients"
	"github.com/jsamuelsen/artofday/internal/domain"
)

// maxBodyBytes bounds how much of a collection response is decoded.
const maxBodyBytes = 4 << 20

var errNilBody = errors.New("response body is nil")

// gateway issues GET requests to one downstream and turns failures into
// domain errors named after that downstream.
type gateway struct {
	client *clients.Client
	name   string
}

// get returns the body of a successful response; the caller closes it.
// ref identifies the requested entity when the downstream answers 404.
func (g gateway) get(ctx context.Context, path string, query url.Values, op, ref string) (io.ReadCloser, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := g.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, g.name, op, ref)
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp.Body, nil
	}

	defer func() { _ = resp.Body.Close() }()

	return nil, MapHTTPError(resp, nil, g.name, op, ref)
}

// available reports an Unavailable error while the circuit is open, so
// probes do not consume half-open slots.
func (g gateway) available() error {
	if g.client.CircuitState() == clients.StateOpen {
		return domain.NewUnavailableError(g.name, "circuit breaker open")
	}

	return nil
}

// decodeJSON reads at most maxBodyBytes of body into a T and closes it.
func decodeJSON[T any](body io.ReadCloser) (T, error) {
	var out T

	if body == nil {
		return out, errNilBody
	}
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&out); err != nil {
		return out, fmt.Errorf("decoding response: %w", err)
	}

	return out, nil
}

// positive rejects zero and negative values for field.
func positive[N cmp.Ordered](v N, field string) error {
	var zero N
	if v > zero {
		return nil
	}

	return domain.NewValidationErrorWithValue(field, "must be positive", v)
}

// translateAll converts each external record in order, stopping at the
// first record that does not translate.
func translateAll[E, D any](items []E, fn func(*E) (*D, error)) ([]*D, error) {
	out := make([]*D, 0, len(items))

	for i := range items {
		d, err := fn(&items[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		out = append(out, d)
	}

	return out, nil
}
