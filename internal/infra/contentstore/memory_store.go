package contentstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yanqian/contenttools/internal/domain/content"
)

// MemoryStore keeps content in process memory. Used for local runs and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	posts      map[int64]content.Post
	meta       map[int64]map[string]string
	categories map[string]content.Category
	nextCatID  int64
}

var _ content.Store = (*MemoryStore)(nil)

// NewMemoryStore constructs a store seeded with posts.
func NewMemoryStore(posts ...content.Post) *MemoryStore {
	s := &MemoryStore{
		posts:      make(map[int64]content.Post, len(posts)),
		meta:       make(map[int64]map[string]string),
		categories: make(map[string]content.Category),
	}
	for _, p := range posts {
		s.Put(p)
	}
	return s
}

// Put inserts or replaces a post, registering its categories.
func (s *MemoryStore) Put(post content.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range post.Categories {
		s.ensureCategoryLocked(name)
	}
	s.posts[post.ID] = clonePost(post)
}

func (s *MemoryStore) Get(_ context.Context, id int64) (content.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return content.Post{}, false, nil
	}
	return clonePost(post), true, nil
}

func (s *MemoryStore) FindByURL(_ context.Context, url string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sortedIDsLocked() {
		post := s.posts[id]
		if post.Type != content.TypeAttachment && post.URL == url {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (s *MemoryStore) FindBySlug(_ context.Context, slug string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sortedIDsLocked() {
		post := s.posts[id]
		if post.Type != content.TypeAttachment && post.Status != content.StatusTrash && post.Slug == slug {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (s *MemoryStore) UpdateBody(_ context.Context, id int64, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	post.Body = body
	s.posts[id] = post
	return nil
}

func (s *MemoryStore) GetMeta(_ context.Context, id int64, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.meta[id][key]
	return value, ok, nil
}

func (s *MemoryStore) SetMeta(_ context.Context, id int64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("post %d not found", id)
	}
	if s.meta[id] == nil {
		s.meta[id] = make(map[string]string)
	}
	s.meta[id][key] = value
	return nil
}

func (s *MemoryStore) DeleteMeta(_ context.Context, id int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.meta[id], key)
	return nil
}

func (s *MemoryStore) Trash(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	post.Status = content.StatusTrash
	s.posts[id] = post
	return nil
}

func (s *MemoryStore) EnsureCategory(_ context.Context, name string) (content.Category, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return content.Category{}, false, fmt.Errorf("category name cannot be empty")
	}
	_, existed := s.categories[strings.ToLower(name)]
	return s.ensureCategoryLocked(name), !existed, nil
}

func (s *MemoryStore) SetCategories(_ context.Context, id int64, categoryIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	names := make([]string, 0, len(categoryIDs))
	for _, catID := range categoryIDs {
		found := false
		for _, cat := range s.categories {
			if cat.ID == catID {
				names = append(names, cat.Name)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("category %d not found", catID)
		}
	}
	post.Categories = names
	s.posts[id] = post
	return nil
}

func (s *MemoryStore) FindAttachmentByURL(_ context.Context, url string) (content.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sortedIDsLocked() {
		post := s.posts[id]
		if post.URL == url {
			return clonePost(post), true, nil
		}
	}
	return content.Post{}, false, nil
}

func (s *MemoryStore) FindReferencing(_ context.Context, fragment string) ([]content.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []content.Post
	for _, id := range s.sortedIDsLocked() {
		post := s.posts[id]
		if post.Type == content.TypeAttachment || !post.Published() {
			continue
		}
		if strings.Contains(post.Body, fragment) {
			out = append(out, clonePost(post))
		}
	}
	return out, nil
}

func (s *MemoryStore) ListPublished(_ context.Context) ([]content.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []content.Post
	for _, id := range s.sortedIDsLocked() {
		post := s.posts[id]
		if post.Type == content.TypePost && post.Published() {
			out = append(out, clonePost(post))
		}
	}
	return out, nil
}

func (s *MemoryStore) ensureCategoryLocked(name string) content.Category {
	key := strings.ToLower(strings.TrimSpace(name))
	if cat, ok := s.categories[key]; ok {
		return cat
	}
	s.nextCatID++
	cat := content.Category{ID: s.nextCatID, Name: strings.TrimSpace(name)}
	s.categories[key] = cat
	return cat
}

func (s *MemoryStore) sortedIDsLocked() []int64 {
	ids := make([]int64, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func clonePost(p content.Post) content.Post {
	p.Categories = append([]string(nil), p.Categories...)
	return p
}
