// internal/store/search.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"candidate-intake/internal/common/logger"
	"candidate-intake/internal/models"
)

// SearchIndex mirrors accepted candidates into Elasticsearch for recruiter
// search. The Postgres row stays the source of truth; this index is
// rebuildable.
type SearchIndex struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

// NewSearchIndex creates a search mirror over the given index name.
func NewSearchIndex(es *elasticsearch.Client, index string, log logger.Logger) *SearchIndex {
	return &SearchIndex{es: es, index: index, logger: log}
}

// Index writes one candidate document, keyed by email so re-imports update
// in place.
func (s *SearchIndex) Index(ctx context.Context, cand *models.AcceptedCandidate) error {
	body, err := json.Marshal(cand)
	if err != nil {
		return fmt.Errorf("marshal candidate document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: cand.Email,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("index candidate: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index candidate: %s: %s", res.Status(), string(msg))
	}
	return nil
}

// Search runs a simple multi-field match over the candidate index.
func (s *SearchIndex) Search(ctx context.Context, query string, size int) ([]models.AcceptedCandidate, error) {
	if size <= 0 {
		size = 20
	}
	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "position", "location", "company", "sourceOfCV"},
			},
		},
	})

	from := 0
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		From:  &from,
		Size:  &size,
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search candidates: %s: %s", res.Status(), string(msg))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.AcceptedCandidate `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]models.AcceptedCandidate, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
