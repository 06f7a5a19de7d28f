package api

import "time"

// RegisterRequest запрос на регистрацию пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse ответ на регистрацию пользователя.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// LoginRequest запрос на аутентификацию.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse ответ с access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username"`
}

// ErrorResponse стандартный формат ошибки.
type ErrorResponse struct {
	Message string `json:"message"`
}

// CreatePostRequest запрос на создание поста.
type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// CreatePostResponse ответ на создание поста.
type CreatePostResponse struct {
	PostID string `json:"post_id"`
}

// LikeResponse ответ на like/unlike (toggle).
type LikeResponse struct {
	Liked bool `json:"liked"` // true = лайк поставлен, false = снят
}

// CreateCommentRequest запрос на добавление комментария.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CreateCommentResponse ответ на добавление комментария.
type CreateCommentResponse struct {
	CommentID string `json:"comment_id"`
}

// Comment комментарий в таймлайне.
type Comment struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
}

// Post пост в таймлайне вместе с агрегатами.
type Post struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Comments  []Comment `json:"comments"`
	Likes     int       `json:"likes"`
	LikedByMe bool      `json:"liked_by_me"`
}

// TimelineResponse страница таймлайна.
type TimelineResponse struct {
	Posts   []Post `json:"posts"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}
