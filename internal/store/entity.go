package store

import (
	"sort"
	"sync"

	"github.com/kampusapp/kampus-sync/domain"
)

type likeKey struct {
	kind domain.ObjectKind
	id   string
}

// entityStore holds the normalized collections behind one mutex. Every
// accessor returns copies so callers can never mutate held state directly.
type entityStore struct {
	mu sync.Mutex

	posts     map[string]*domain.Post
	postOrder []string

	projects     map[string]*domain.Project
	projectOrder []string

	liked map[likeKey]struct{}

	// Issue-order sequencing for like reconciliation. likeSeq is the next
	// sequence to hand out, likeAccepted the last sequence whose
	// authoritative count was applied.
	likeSeq      map[likeKey]uint64
	likeAccepted map[likeKey]uint64
}

var _ domain.EntityStore = (*entityStore)(nil)

// NewEntityStore creates an empty store.
func NewEntityStore() *entityStore {
	return &entityStore{
		posts:        make(map[string]*domain.Post),
		projects:     make(map[string]*domain.Project),
		liked:        make(map[likeKey]struct{}),
		likeSeq:      make(map[likeKey]uint64),
		likeAccepted: make(map[likeKey]uint64),
	}
}

func copyPost(p *domain.Post) domain.Post {
	out := *p
	out.Images = append([]string(nil), p.Images...)
	out.Hashtags = append([]string(nil), p.Hashtags...)
	out.Comments = append([]domain.Comment(nil), p.Comments...)
	return out
}

func copyProject(p *domain.Project) domain.Project {
	out := *p
	out.Members = append([]string(nil), p.Members...)
	out.Comments = append([]domain.Comment(nil), p.Comments...)
	return out
}

func (s *entityStore) upsertPost(p domain.Post, resort bool) {
	cp := copyPost(&p)
	if _, ok := s.posts[p.ID]; !ok {
		s.postOrder = append(s.postOrder, p.ID)
	}
	s.posts[p.ID] = &cp
	if resort {
		s.sortPostsLocked()
	}
}

func (s *entityStore) sortPostsLocked() {
	sort.SliceStable(s.postOrder, func(i, j int) bool {
		return s.posts[s.postOrder[i]].CreatedAt.After(s.posts[s.postOrder[j]].CreatedAt)
	})
}

func (s *entityStore) sortProjectsLocked() {
	sort.SliceStable(s.projectOrder, func(i, j int) bool {
		return s.projects[s.projectOrder[i]].CreatedAt.After(s.projects[s.projectOrder[j]].CreatedAt)
	})
}

func (s *entityStore) UpsertPost(p domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertPost(p, false)
}

func (s *entityStore) UpsertPostSorted(p domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertPost(p, true)
}

func (s *entityStore) upsertProject(p domain.Project, resort bool) {
	cp := copyProject(&p)
	if _, ok := s.projects[p.ID]; !ok {
		s.projectOrder = append(s.projectOrder, p.ID)
	}
	s.projects[p.ID] = &cp
	if resort {
		s.sortProjectsLocked()
	}
}

func (s *entityStore) UpsertProject(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertProject(p, false)
}

func (s *entityStore) UpsertProjectSorted(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertProject(p, true)
}

func (s *entityStore) Post(id string) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, false
	}
	return copyPost(p), true
}

func (s *entityStore) Project(id string) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return domain.Project{}, false
	}
	return copyProject(p), true
}

func (s *entityStore) Feed() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, 0, len(s.postOrder))
	for _, id := range s.postOrder {
		out = append(out, copyPost(s.posts[id]))
	}
	return out
}

func (s *entityStore) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, 0, len(s.projectOrder))
	for _, id := range s.projectOrder {
		out = append(out, copyProject(s.projects[id]))
	}
	return out
}

// PatchPost fails silently when id is absent, per the store contract:
// callers must check existence first to detect genuine errors.
func (s *entityStore) PatchPost(id string, patch domain.PostPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Images != nil {
		p.Images = append([]string(nil), patch.Images...)
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
}

func (s *entityStore) RemovePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return
	}
	delete(s.posts, id)
	s.postOrder = removeID(s.postOrder, id)
}

func (s *entityStore) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return
	}
	delete(s.projects, id)
	s.projectOrder = removeID(s.projectOrder, id)
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// AddLikes clamps at zero and returns the delta actually applied so the
// caller can undo exactly that much on rollback.
func (s *entityStore) AddLikes(kind domain.ObjectKind, id string, delta int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	likes := s.likesRef(kind, id)
	if likes == nil {
		return 0, false
	}
	applied := delta
	if *likes+delta < 0 {
		applied = -*likes
	}
	*likes += applied
	return applied, true
}

func (s *entityStore) likesRef(kind domain.ObjectKind, id string) *int64 {
	switch kind {
	case domain.KindPost:
		if p, ok := s.posts[id]; ok {
			return &p.Likes
		}
	case domain.KindProject:
		if p, ok := s.projects[id]; ok {
			return &p.Likes
		}
	}
	return nil
}

func (s *entityStore) commentsRef(kind domain.ObjectKind, id string) (*[]domain.Comment, *int64) {
	switch kind {
	case domain.KindPost:
		if p, ok := s.posts[id]; ok {
			return &p.Comments, &p.CommentCount
		}
	case domain.KindProject:
		if p, ok := s.projects[id]; ok {
			return &p.Comments, &p.CommentCount
		}
	}
	return nil, nil
}

// AppendComment appends and bumps the count under one lock acquisition, so
// readers never observe the pair out of step.
func (s *entityStore) AppendComment(parentID string, kind domain.ObjectKind, c domain.Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments, count := s.commentsRef(kind, parentID)
	if comments == nil {
		return false
	}
	*comments = append(*comments, c)
	*count++
	return true
}

func (s *entityStore) ReplaceComment(parentID string, kind domain.ObjectKind, localID string, canonical domain.Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments, _ := s.commentsRef(kind, parentID)
	if comments == nil {
		return false
	}
	for i := range *comments {
		if (*comments)[i].ID == localID {
			(*comments)[i] = canonical
			return true
		}
	}
	return false
}

func (s *entityStore) RemoveComment(parentID string, kind domain.ObjectKind, commentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments, count := s.commentsRef(kind, parentID)
	if comments == nil {
		return false
	}
	for i := range *comments {
		if (*comments)[i].ID == commentID {
			*comments = append((*comments)[:i], (*comments)[i+1:]...)
			if *count > 0 {
				*count--
			}
			return true
		}
	}
	return false
}

func (s *entityStore) SetMembers(projectID string, members []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return false
	}
	p.Members = append([]string(nil), members...)
	return true
}

func (s *entityStore) SetMember(projectID, memberID string, present bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return false
	}
	for i, m := range p.Members {
		if m == memberID {
			if present {
				return false
			}
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			return true
		}
	}
	if !present {
		return false
	}
	p.Members = append(p.Members, memberID)
	return true
}

func (s *entityStore) SetLiked(kind domain.ObjectKind, id string, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := likeKey{kind, id}
	if liked {
		s.liked[k] = struct{}{}
	} else {
		delete(s.liked, k)
	}
}

func (s *entityStore) IsLiked(kind domain.ObjectKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[likeKey{kind, id}]
	return ok
}

// ReplaceAllPosts merges one fetched page: incoming records replace their
// ids, records from other pages already held stay, and the feed is re-sorted
// by creation timestamp descending.
func (s *entityStore) ReplaceAllPosts(list []domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range list {
		s.upsertPost(p, false)
	}
	s.sortPostsLocked()
}

func (s *entityStore) ReplaceAllProjects(list []domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range list {
		s.upsertProject(p, false)
	}
	s.sortProjectsLocked()
}

func (s *entityStore) NextLikeSeq(kind domain.ObjectKind, id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := likeKey{kind, id}
	s.likeSeq[k]++
	return s.likeSeq[k]
}

// ReconcileLikes applies an authoritative server count unless it is older,
// by request-issue-order, than the last one accepted. The liked flag is
// never touched here: the flag is about this user's action, the count is
// global.
func (s *entityStore) ReconcileLikes(kind domain.ObjectKind, id string, seq uint64, count int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := likeKey{kind, id}
	if seq < s.likeAccepted[k] {
		return false
	}
	likes := s.likesRef(kind, id)
	if likes == nil {
		return false
	}
	if count < 0 {
		count = 0
	}
	s.likeAccepted[k] = seq
	*likes = count
	return true
}
