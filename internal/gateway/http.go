package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/kampusapp/kampus-sync/domain"
)

const defaultTimeout = 10 * time.Second

// Client is the thin HTTP remote gateway. Connectivity failures surface as
// *domain.TransportError, non-2xx verdicts as *domain.ServerError; callers
// never see raw transport details.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

var _ domain.RemoteGateway = (*Client)(nil)

// NewClient will create a new remote gateway client object
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token attached to every request. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &msg)
		return &domain.ServerError{Op: op, Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.ServerError{Op: op, Status: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func (c *Client) FetchPosts(ctx context.Context, page int) ([]domain.Post, error) {
	var dtos []postDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts?page=%d", page), nil, &dtos); err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(dtos))
	for _, d := range dtos {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (c *Client) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	var dtos []projectDTO
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &dtos); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(dtos))
	for _, d := range dtos {
		projects = append(projects, d.toDomain())
	}
	return projects, nil
}

func (c *Client) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	var dtos []notificationDTO
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &dtos); err != nil {
		return nil, err
	}
	notifications := make([]domain.Notification, 0, len(dtos))
	for _, d := range dtos {
		notifications = append(notifications, d.toDomain())
	}
	return notifications, nil
}

func (c *Client) FetchProfile(ctx context.Context) (domain.Profile, error) {
	var dto profileDTO
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &dto); err != nil {
		return domain.Profile{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) CreatePost(ctx context.Context, content string, images []string) (domain.Post, error) {
	payload := struct {
		Content string   `json:"content"`
		Images  []string `json:"images,omitempty"`
	}{Content: content, Images: images}

	var dto postDTO
	if err := c.do(ctx, http.MethodPost, "/posts", payload, &dto); err != nil {
		return domain.Post{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) CreateProject(ctx context.Context, draft domain.ProjectDraft) (domain.Project, error) {
	payload := struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Technology  string `json:"technology"`
		Image       string `json:"image,omitempty"`
	}{draft.Title, draft.Description, draft.Technology, draft.Image}

	var dto projectDTO
	if err := c.do(ctx, http.MethodPost, "/projects", payload, &dto); err != nil {
		return domain.Project{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) CreateComment(ctx context.Context, kind domain.ObjectKind, parentID, content string) (domain.Comment, error) {
	payload := struct {
		Content string `json:"content"`
	}{Content: content}

	var dto commentDTO
	path := fmt.Sprintf("/%ss/%s/comment", kind, parentID)
	if err := c.do(ctx, http.MethodPost, path, payload, &dto); err != nil {
		return domain.Comment{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) ToggleLike(ctx context.Context, kind domain.ObjectKind, id string) (domain.LikeResult, error) {
	var dto likeResponseDTO
	path := fmt.Sprintf("/%ss/%s/like", kind, id)
	if err := c.do(ctx, http.MethodPost, path, nil, &dto); err != nil {
		return domain.LikeResult{}, err
	}
	// Some backend variants return no authoritative count; reconciliation
	// degrades to a no-op then.
	if dto.Likes == nil {
		return domain.LikeResult{}, nil
	}
	return domain.LikeResult{Count: *dto.Likes, HasCount: true}, nil
}

func (c *Client) ToggleMember(ctx context.Context, projectID, memberID string) ([]string, error) {
	payload := struct {
		MemberID string `json:"memberId"`
	}{MemberID: memberID}

	var dto membersResponseDTO
	if err := c.do(ctx, http.MethodPost, "/projects/"+projectID+"/members", payload, &dto); err != nil {
		return nil, err
	}
	return dto.Members, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	var dto profileDTO
	if err := c.do(ctx, http.MethodPut, "/user/profile", newProfileUpdateDTO(patch), &dto); err != nil {
		return domain.Profile{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/notifications/"+id+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil)
}
