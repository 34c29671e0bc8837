package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/mzhdanov/bugtrack/internal/models"
)

const ReportIndex = "reports"

// ReportDoc is the slice of a report that gets indexed for full-text search.
type ReportDoc struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	MenuID      uint   `json:"menu_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

type Service struct {
	ES    *elasticsearch.Client
	Index string
}

func NewService(es *elasticsearch.Client) *Service {
	return &Service{ES: es, Index: ReportIndex}
}

// IndexReport upserts the searchable fields of a report. A nil service or
// client turns indexing into a no-op so the API works without ES.
func (s *Service) IndexReport(ctx context.Context, report *models.Report) error {
	if s == nil || s.ES == nil {
		return nil
	}

	doc := ReportDoc{
		ID:          report.ID,
		UserID:      report.UserID,
		MenuID:      report.MenuID,
		Name:        report.Name,
		Description: report.Description,
		Status:      report.Status,
		Priority:    report.Priority,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	res, err := s.ES.Index(
		s.Index,
		&buf,
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(report.ID), 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es index error: %s", res.Status())
	}
	return nil
}

// Search runs a fuzzy multi_match over name/description. ownerID > 0 pins
// results to that owner, which is how non-admin callers are scoped.
func (s *Service) Search(ctx context.Context, query string, ownerID uint, from, size int) (int64, []ReportDoc, error) {
	if s == nil || s.ES == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}

	match := map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":     query,
			"fields":    []string{"name^2", "description"},
			"fuzziness": "AUTO",
		},
	}

	var q map[string]interface{}
	if ownerID > 0 {
		q = map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   match,
				"filter": map[string]interface{}{"term": map[string]interface{}{"user_id": ownerID}},
			},
		}
	} else {
		q = match
	}

	body := map[string]interface{}{
		"query": q,
		"from":  from,
		"size":  size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("es search error: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ReportDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]ReportDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
