package tracker

import "time"

// Book statuses as stored by the backend.
const (
	StatusWantToRead = "want_to_read"
	StatusReading    = "reading"
	StatusCompleted  = "completed"
)

// Statuses lists the valid book statuses in display order.
var Statuses = []string{StatusWantToRead, StatusReading, StatusCompleted}

// StatusLabel returns a human-readable label for a status value.
func StatusLabel(status string) string {
	switch status {
	case StatusWantToRead:
		return "Want to read"
	case StatusReading:
		return "Reading"
	case StatusCompleted:
		return "Completed"
	default:
		return status
	}
}

// User identifies the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse mirrors the payload returned by the auth endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the signup request body.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Book mirrors a tracked book row as returned by the API.
type Book struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Status      string `json:"status"`
	Pages       *int   `json:"pages"`
	CurrentPage int    `json:"current_page"`
	Rating      *int   `json:"rating"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProgressPercent returns reading progress as a whole percentage in [0,100],
// or -1 when the book has no known page count.
func (b Book) ProgressPercent() int {
	if b.Pages == nil || *b.Pages <= 0 {
		return -1
	}
	pct := b.CurrentPage * 100 / *b.Pages
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ParsedCreatedAt returns the parsed creation timestamp.
func (b Book) ParsedCreatedAt() time.Time {
	return parseTime(b.CreatedAt)
}

// ParsedUpdatedAt returns the parsed last-update timestamp.
func (b Book) ParsedUpdatedAt() time.Time {
	return parseTime(b.UpdatedAt)
}

// BookPayload is the full field set sent on create and update. The client
// always resends every field; nil Pages/Rating serialize as explicit nulls.
type BookPayload struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Status      string `json:"status"`
	Pages       *int   `json:"pages"`
	CurrentPage int    `json:"current_page"`
	Rating      *int   `json:"rating"`
	Notes       string `json:"notes"`
}

// Stats mirrors the server-computed aggregate summary.
type Stats struct {
	TotalBooks     int     `json:"total_books"`
	Completed      int     `json:"completed"`
	Reading        int     `json:"reading"`
	WantToRead     int     `json:"want_to_read"`
	TotalPagesRead int     `json:"total_pages_read"`
	AverageRating  float64 `json:"average_rating"`
}

// Recommendation is an AI-suggested book. Reason may be empty.
type Recommendation struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Reason string `json:"reason"`
}

// RecommendationBasis summarizes the reading history the suggestions were
// generated from.
type RecommendationBasis struct {
	CompletedBooks  int `json:"completed_books"`
	ReadingBooks    int `json:"reading_books"`
	WantToReadBooks int `json:"want_to_read_books"`
}

// RecommendationsResponse mirrors GET /api/recommendations.
type RecommendationsResponse struct {
	Recommendations []Recommendation     `json:"recommendations"`
	BasedOn         *RecommendationBasis `json:"based_on"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
