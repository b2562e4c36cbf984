package skills

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// ClassName is the Weaviate class holding the skill corpus.
const ClassName = "BNCCSkill"

// WeaviateConfig configures the vector-index retriever.
type WeaviateConfig struct {
	// Host is the Weaviate endpoint, e.g. "localhost:8080".
	Host string

	// Scheme is "http" or "https".
	Scheme string
}

// WeaviateRetriever performs semantic nearText search over the ingested
// BNCC skill corpus.
type WeaviateRetriever struct {
	client *weaviate.Client
	logger *slog.Logger
}

// NewWeaviateRetriever connects to the configured Weaviate endpoint.
func NewWeaviateRetriever(cfg WeaviateConfig, logger *slog.Logger) (*WeaviateRetriever, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("weaviate host is required")
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "http"
	}
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   cfg.Host,
		Scheme: scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WeaviateRetriever{client: client, logger: logger}, nil
}

func (r *WeaviateRetriever) Mode() string { return "weaviate" }

// Search runs a nearText query, optionally filtered by grade band. Index
// unavailability degrades to an empty result with a warning; the caller
// never sees "not found" as an error.
func (r *WeaviateRetriever) Search(ctx context.Context, query string, f SearchFilters, limit int) ([]SkillRecord, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	nearText := r.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	fields := []graphql.Field{
		{Name: "code"},
		{Name: "description"},
		{Name: "gradeBand"},
		{Name: "thematicUnit"},
		{Name: "knowledgeObject"},
	}

	q := r.client.GraphQL().Get().
		WithClassName(ClassName).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(limit)

	if f.GradeBand != "" {
		q = q.WithWhere(filters.Where().
			WithPath([]string{"gradeBand"}).
			WithOperator(filters.Equal).
			WithValueString(f.GradeBand))
	}

	result, err := q.Do(ctx)
	if err != nil {
		r.logger.Warn("skill index query failed", "error", err)
		return nil, nil
	}
	if len(result.Errors) > 0 {
		r.logger.Warn("skill index returned errors", "error", result.Errors[0].Message)
		return nil, nil
	}

	return parseSkillResults(result), nil
}

// parseSkillResults maps the GraphQL payload back to SkillRecords.
func parseSkillResults(result *models.GraphQLResponse) []SkillRecord {
	get, ok := result.Data["Get"].(map[string]any)
	if !ok {
		return nil
	}
	rows, ok := get[ClassName].([]any)
	if !ok {
		return nil
	}

	out := make([]SkillRecord, 0, len(rows))
	for _, row := range rows {
		props, ok := row.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, SkillRecord{
			Code:            str(props["code"]),
			Description:     str(props["description"]),
			GradeBand:       str(props["gradeBand"]),
			ThematicUnit:    str(props["thematicUnit"]),
			KnowledgeObject: str(props["knowledgeObject"]),
		})
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// EnsureSchema creates the skill class if it does not exist yet.
func (r *WeaviateRetriever) EnsureSchema(ctx context.Context) error {
	exists, err := r.client.Schema().ClassExistenceChecker().
		WithClassName(ClassName).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("check class %s: %w", ClassName, err)
	}
	if exists {
		return nil
	}

	class := &models.Class{
		Class:       ClassName,
		Description: "BNCC mathematics curriculum skill",
		Properties: []*models.Property{
			{Name: "code", DataType: []string{"text"}},
			{Name: "description", DataType: []string{"text"}},
			{Name: "gradeBand", DataType: []string{"text"}},
			{Name: "thematicUnit", DataType: []string{"text"}},
			{Name: "knowledgeObject", DataType: []string{"text"}},
		},
	}
	if err := r.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", ClassName, err)
	}
	return nil
}

// Ingest batch-loads skill records into the index.
func (r *WeaviateRetriever) Ingest(ctx context.Context, records []SkillRecord) error {
	if len(records) == 0 {
		return nil
	}

	objects := make([]*models.Object, len(records))
	for i, rec := range records {
		objects[i] = &models.Object{
			Class: ClassName,
			Properties: map[string]any{
				"code":            rec.Code,
				"description":     rec.Description,
				"gradeBand":       rec.GradeBand,
				"thematicUnit":    rec.ThematicUnit,
				"knowledgeObject": rec.KnowledgeObject,
			},
		}
	}

	resp, err := r.client.Batch().ObjectsBatcher().
		WithObjects(objects...).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("batch ingest: %w", err)
	}
	for _, obj := range resp {
		if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
			return fmt.Errorf("ingest object: %s", obj.Result.Errors.Error[0].Message)
		}
	}
	return nil
}
