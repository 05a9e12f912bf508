package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"go.uber.org/zap"

	"github.com/forkful/foodsearch/internal/domain"
)

// returnFields are the item properties and ranking metadata requested with
// every query.
var returnFields = []graphql.Field{
	{Name: "name"},
	{Name: "description"},
	{Name: "price"},
	{Name: "calories"},
	{Name: "image"},
	{Name: "_additional", Fields: []graphql.Field{
		{Name: "distance"},
		{Name: "certainty"},
	}},
}

// Repo issues nearest-neighbor queries against the food collection.
type Repo struct {
	conn   *Conn
	class  string
	logger *zap.Logger
}

// NewRepo creates a search repository over the shared connection.
func NewRepo(conn *Conn, class string, logger *zap.Logger) *Repo {
	return &Repo{conn: conn, class: class, logger: logger}
}

// Query runs a nearest-neighbor search in the query's target vector space
// with the requested limit. Backend ranking order is preserved as-is; zero
// matches yield an empty slice, not an error.
func (r *Repo) Query(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error) {
	client, err := r.conn.Client(ctx)
	if err != nil {
		return nil, err
	}

	get := client.GraphQL().Get().
		WithClassName(r.class).
		WithLimit(q.Limit()).
		WithFields(returnFields...)

	switch q.Modality() {
	case domain.ModalityImage:
		get = get.WithNearImage(client.GraphQL().NearImageArgBuilder().
			WithImage(q.Image()).
			WithTargetVectors(q.TargetVector()))
	default:
		get = get.WithNearText(client.GraphQL().NearTextArgBuilder().
			WithConcepts([]string{q.Text()}).
			WithTargetVectors(q.TargetVector()))
	}

	resp, err := get.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("near %s query: %w", q.Modality(), err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("near %s query: %s", q.Modality(), resp.Errors[0].Message)
	}

	items, err := itemsFromResponse(resp, r.class)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("backend query done",
		zap.String("modality", string(q.Modality())),
		zap.String("target_vector", q.TargetVector()),
		zap.Int("limit", q.Limit()),
		zap.Int("matches", len(items)),
	)
	return items, nil
}
