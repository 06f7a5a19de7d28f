package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/socialmesh/internal/crdt"
	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/server/storage"
	"github.com/iudanet/socialmesh/internal/validation"
	"github.com/iudanet/socialmesh/pkg/api"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Propagator рассылает локально созданную сущность пирам.
type Propagator interface {
	Propagate(ctx context.Context, entity *models.ReplicatedEntity) int
}

// ReadDistributor выбирает узел для обслуживания чтения.
type ReadDistributor interface {
	SelectRead() string
	IsLocal(url string) bool
}

// TimelineFetcher запрашивает таймлайн у другого узла.
type TimelineFetcher interface {
	FetchTimeline(ctx context.Context, peerURL string, page, perPage int, authHeader string) (*api.TimelineResponse, error)
}

// SocialHandler обрабатывает пользовательские действия: посты, лайки,
// комментарии, таймлайн. Каждая запись выполняется локально и затем
// асинхронно рассылается пирам - ответ пользователю не ждет сети.
type SocialHandler struct {
	logger      *slog.Logger
	storage     storage.EntityStorage
	clock       *crdt.LamportClock
	propagator  Propagator
	distributor ReadDistributor
	fetcher     TimelineFetcher
	selfURL     string
}

// NewSocialHandler создает handler пользовательских действий.
func NewSocialHandler(
	logger *slog.Logger,
	entityStorage storage.EntityStorage,
	clock *crdt.LamportClock,
	propagator Propagator,
	distributor ReadDistributor,
	fetcher TimelineFetcher,
	selfURL string,
) *SocialHandler {
	return &SocialHandler{
		logger:      logger,
		storage:     entityStorage,
		clock:       clock,
		propagator:  propagator,
		distributor: distributor,
		fetcher:     fetcher,
		selfURL:     selfURL,
	}
}

// CreatePost обрабатывает POST /api/v1/posts
func (h *SocialHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePostContent(req.Content); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := json.Marshal(models.PostPayload{Content: req.Content, ImageURL: req.ImageURL})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal post payload", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	entity := &models.ReplicatedEntity{
		ID:         uuid.New().String(),
		Kind:       models.KindPost,
		AuthorID:   userID,
		AuthorName: username,
		OriginPeer: h.selfURL,
		Payload:    payload,
		Timestamp:  h.clock.Tick(),
		CreatedAt:  time.Now(),
	}

	if !h.saveAndPropagate(ctx, w, entity) {
		return
	}

	h.logger.InfoContext(ctx, "post created",
		slog.String("post_id", entity.ID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, api.CreatePostResponse{PostID: entity.ID}, http.StatusCreated)
}

// ToggleLike обрабатывает POST /api/v1/posts/{id}/like
// Повторный лайк снимает предыдущий: unlike - это LWW soft delete
// той же сущности с новым timestamp.
func (h *SocialHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	postID := r.PathValue("id")
	if postID == "" {
		sendError(h.logger, w, "post id is required", http.StatusBadRequest)
		return
	}

	// Пост должен существовать локально
	if _, err := h.storage.GetEntity(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			sendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	var entity *models.ReplicatedEntity

	existing, err := h.storage.FindLike(ctx, postID, userID)
	switch {
	case err == nil:
		// Переключаем существующий лайк: снятый воскрешаем, активный гасим
		entity = existing.Clone()
		entity.Deleted = !existing.Deleted
		entity.Timestamp = h.clock.Tick()
		entity.OriginPeer = h.selfURL
	case errors.Is(err, storage.ErrEntityNotFound):
		entity = &models.ReplicatedEntity{
			ID:         uuid.New().String(),
			Kind:       models.KindLike,
			AuthorID:   userID,
			AuthorName: username,
			SubjectID:  postID,
			OriginPeer: h.selfURL,
			Payload:    json.RawMessage(`{}`),
			Timestamp:  h.clock.Tick(),
			CreatedAt:  time.Now(),
		}
	default:
		h.logger.ErrorContext(ctx, "failed to find like", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.saveAndPropagate(ctx, w, entity) {
		return
	}

	liked := !entity.Deleted
	h.logger.InfoContext(ctx, "like toggled",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
		slog.Bool("liked", liked))

	sendJSON(h.logger, w, api.LikeResponse{Liked: liked}, http.StatusOK)
}

// CreateComment обрабатывает POST /api/v1/posts/{id}/comments
func (h *SocialHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	postID := r.PathValue("id")
	if postID == "" {
		sendError(h.logger, w, "post id is required", http.StatusBadRequest)
		return
	}

	var req api.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCommentText(req.Text); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.storage.GetEntity(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			sendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(models.CommentPayload{Text: req.Text})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal comment payload", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	entity := &models.ReplicatedEntity{
		ID:         uuid.New().String(),
		Kind:       models.KindComment,
		AuthorID:   userID,
		AuthorName: username,
		SubjectID:  postID,
		OriginPeer: h.selfURL,
		Payload:    payload,
		Timestamp:  h.clock.Tick(),
		CreatedAt:  time.Now(),
	}

	if !h.saveAndPropagate(ctx, w, entity) {
		return
	}

	h.logger.InfoContext(ctx, "comment created",
		slog.String("comment_id", entity.ID),
		slog.String("post_id", postID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, api.CreateCommentResponse{CommentID: entity.ID}, http.StatusCreated)
}

// Timeline обрабатывает GET /api/v1/timeline?page=&per_page=
// Чтение может быть делегировано healthy пиру через LoadDistributor;
// любая ошибка удаленного узла приводит к локальному ответу.
func (h *SocialHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", defaultPerPage)
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	// Делегированные запросы отвечаем локально: максимум один хоп
	delegated := r.Header.Get("X-Timeline-Delegated") != ""

	target := h.distributor.SelectRead()
	if !delegated && !h.distributor.IsLocal(target) {
		resp, err := h.fetcher.FetchTimeline(ctx, target, page, perPage, r.Header.Get("Authorization"))
		if err == nil {
			sendJSON(h.logger, w, resp, http.StatusOK)
			return
		}
		h.logger.WarnContext(ctx, "delegated timeline failed, serving locally",
			slog.String("peer", target),
			slog.Any("error", err))
	}

	resp, err := h.localTimeline(ctx, userID, page, perPage)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build timeline", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

func (h *SocialHandler) localTimeline(ctx context.Context, userID string, page, perPage int) (*api.TimelineResponse, error) {
	posts, err := h.storage.ListPosts(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	apiPosts := make([]api.Post, 0, len(posts))
	for _, post := range posts {
		var payload models.PostPayload
		if err := json.Unmarshal(post.Payload, &payload); err != nil {
			h.logger.Warn("skipping post with malformed payload", slog.String("post_id", post.ID))
			continue
		}

		likes, err := h.storage.CountLikes(ctx, post.ID)
		if err != nil {
			return nil, err
		}

		likedByMe, err := h.storage.HasLiked(ctx, post.ID, userID)
		if err != nil {
			return nil, err
		}

		comments, err := h.storage.ListComments(ctx, post.ID)
		if err != nil {
			return nil, err
		}

		apiComments := make([]api.Comment, 0, len(comments))
		for _, c := range comments {
			var cp models.CommentPayload
			if err := json.Unmarshal(c.Payload, &cp); err != nil {
				continue
			}
			apiComments = append(apiComments, api.Comment{
				ID:        c.ID,
				AuthorID:  c.AuthorID,
				Username:  c.AuthorName,
				Text:      cp.Text,
				CreatedAt: c.CreatedAt,
			})
		}

		apiPosts = append(apiPosts, api.Post{
			ID:        post.ID,
			AuthorID:  post.AuthorID,
			Username:  post.AuthorName,
			Content:   payload.Content,
			ImageURL:  payload.ImageURL,
			Likes:     likes,
			LikedByMe: likedByMe,
			Comments:  apiComments,
			CreatedAt: post.CreatedAt,
		})
	}

	return &api.TimelineResponse{
		Posts:   apiPosts,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// saveAndPropagate сохраняет сущность и запускает асинхронную рассылку.
// Сбой рассылки не откатывает запись: пропущенные пиры догонят через
// reconciliation.
func (h *SocialHandler) saveAndPropagate(ctx context.Context, w http.ResponseWriter, entity *models.ReplicatedEntity) bool {
	if _, err := h.storage.SaveEntity(ctx, entity); err != nil {
		h.logger.ErrorContext(ctx, "failed to save entity",
			slog.String("entity_id", entity.ID),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return false
	}

	go h.propagator.Propagate(context.WithoutCancel(ctx), entity)
	return true
}

func (h *SocialHandler) requireUser(w http.ResponseWriter, r *http.Request) (userID, username string, ok bool) {
	userID, ok = GetUserID(r.Context())
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}
	username, _ = GetUsername(r.Context())
	return userID, username, true
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
