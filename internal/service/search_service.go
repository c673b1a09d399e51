package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"

	"monagenda.fr/myagenda/internal/model"
)

const homeworkIndex = "homeworks"

// SearchService indexes homework for full-text search. It is an optional
// capability: a nil SearchService disables search entirely.
type SearchService interface {
	IndexHomework(homework *model.Homework) error
	DeleteHomework(id string) error
	// Search returns the IDs of homework matching the query, most relevant
	// first. Callers re-check access on each hit.
	Search(query string) ([]string, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	sortableAttrs := []string{"due_date"}
	if _, err := s.client.Index(homeworkIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update homework sortable attributes: %v", err)
	}
}

type meiliHomeworkDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Class       string `json:"class"`
	DueDate     int64  `json:"due_date"`
}

func (s *meiliSearchService) IndexHomework(homework *model.Homework) error {
	doc := meiliHomeworkDoc{
		ID:          homework.ID.String(),
		Title:       homework.Title,
		Subject:     homework.Subject,
		Description: homework.Description,
		Class:       homework.Class,
	}
	if homework.DueDate != nil {
		doc.DueDate = homework.DueDate.Unix()
	}

	_, err := s.client.Index(homeworkIndex).AddDocuments([]meiliHomeworkDoc{doc}, nil)
	if err != nil {
		return fmt.Errorf("failed to index homework %s: %w", doc.ID, err)
	}
	return nil
}

func (s *meiliSearchService) DeleteHomework(id string) error {
	_, err := s.client.Index(homeworkIndex).DeleteDocument(id)
	if err != nil {
		return fmt.Errorf("failed to delete homework %s from index: %w", id, err)
	}
	return nil
}

func (s *meiliSearchService) Search(query string) ([]string, error) {
	resp, err := s.client.Index(homeworkIndex).Search(query, &meilisearch.SearchRequest{
		Limit: 100,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, ok := hit["id"]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
