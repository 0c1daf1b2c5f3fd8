package structure

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/structure"
)

type memorySectionRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*structure.Section
	order []uuid.UUID
}

// NewMemorySectionRepository constructs an in-memory repository for sections.
func NewMemorySectionRepository() SectionRepository {
	return &memorySectionRepository{
		byID: make(map[uuid.UUID]*structure.Section),
	}
}

func (m *memorySectionRepository) Create(_ context.Context, section *structure.Section) (*structure.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSection(section)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloneSection(cloned), nil
}

func (m *memorySectionRepository) GetByID(_ context.Context, id uuid.UUID) (*structure.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &structure.NotFoundError{Resource: "section", Key: id.String()}
	}
	return cloneSection(record), nil
}

func (m *memorySectionRepository) List(_ context.Context) ([]*structure.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*structure.Section, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, cloneSection(m.byID[id]))
	}
	return records, nil
}

func (m *memorySectionRepository) Update(_ context.Context, section *structure.Section) (*structure.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[section.ID]; !ok {
		return nil, &structure.NotFoundError{Resource: "section", Key: section.ID.String()}
	}
	cloned := cloneSection(section)
	m.byID[cloned.ID] = cloned
	return cloneSection(cloned), nil
}

func (m *memorySectionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &structure.NotFoundError{Resource: "section", Key: id.String()}
	}
	delete(m.byID, id)
	m.order = removeUUID(m.order, id)
	return nil
}

type memoryDocumentRepository struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]*structure.Document
	bySlug    map[string]uuid.UUID
	bySection map[uuid.UUID][]uuid.UUID
	order     []uuid.UUID
}

// NewMemoryDocumentRepository constructs an in-memory repository for documents.
func NewMemoryDocumentRepository() DocumentRepository {
	return &memoryDocumentRepository{
		byID:      make(map[uuid.UUID]*structure.Document),
		bySlug:    make(map[string]uuid.UUID),
		bySection: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *memoryDocumentRepository) Create(_ context.Context, doc *structure.Document) (*structure.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneDocument(doc)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	if cloned.Slug != "" {
		m.bySlug[cloned.Slug] = cloned.ID
	}
	m.bySection[cloned.SectionID] = appendUniqueUUID(m.bySection[cloned.SectionID], cloned.ID)
	return cloneDocument(cloned), nil
}

func (m *memoryDocumentRepository) GetByID(_ context.Context, id uuid.UUID) (*structure.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &structure.NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneDocument(record), nil
}

func (m *memoryDocumentRepository) GetBySlug(_ context.Context, slug string) (*structure.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &structure.NotFoundError{Resource: "document", Key: slug}
	}
	return cloneDocument(m.byID[id]), nil
}

func (m *memoryDocumentRepository) List(_ context.Context) ([]*structure.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*structure.Document, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, cloneDocument(m.byID[id]))
	}
	return records, nil
}

func (m *memoryDocumentRepository) ListBySection(_ context.Context, sectionID uuid.UUID) ([]*structure.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.bySection[sectionID]
	records := make([]*structure.Document, 0, len(ids))
	for _, id := range ids {
		records = append(records, cloneDocument(m.byID[id]))
	}
	return records, nil
}

func (m *memoryDocumentRepository) Update(_ context.Context, doc *structure.Document) (*structure.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[doc.ID]
	if !ok {
		return nil, &structure.NotFoundError{Resource: "document", Key: doc.ID.String()}
	}

	oldSlug := existing.Slug
	oldSection := existing.SectionID

	cloned := cloneDocument(doc)
	m.byID[cloned.ID] = cloned

	if oldSlug != "" && oldSlug != cloned.Slug {
		delete(m.bySlug, oldSlug)
	}
	if cloned.Slug != "" {
		m.bySlug[cloned.Slug] = cloned.ID
	}
	if oldSection != cloned.SectionID {
		m.bySection[oldSection] = removeUUID(m.bySection[oldSection], cloned.ID)
		m.bySection[cloned.SectionID] = appendUniqueUUID(m.bySection[cloned.SectionID], cloned.ID)
	}

	return cloneDocument(cloned), nil
}

func (m *memoryDocumentRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.byID[id]
	if !ok {
		return &structure.NotFoundError{Resource: "document", Key: id.String()}
	}
	delete(m.byID, id)
	if doc.Slug != "" {
		delete(m.bySlug, doc.Slug)
	}
	m.bySection[doc.SectionID] = removeUUID(m.bySection[doc.SectionID], id)
	m.order = removeUUID(m.order, id)
	return nil
}

func cloneSection(src *structure.Section) *structure.Section {
	if src == nil {
		return nil
	}
	cloned := *src
	if len(src.Documents) > 0 {
		cloned.Documents = make([]*structure.Document, len(src.Documents))
		for i, doc := range src.Documents {
			cloned.Documents[i] = cloneDocument(doc)
		}
	}
	return &cloned
}

func cloneDocument(src *structure.Document) *structure.Document {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Section = nil
	return &cloned
}

func removeUUID(list []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if len(list) == 0 {
		return list
	}
	out := make([]uuid.UUID, 0, len(list))
	for _, item := range list {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}

func appendUniqueUUID(list []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, item := range list {
		if item == id {
			return list
		}
	}
	return append(list, id)
}
