package domain

// MaxPostImages is the largest number of images a single post may carry.
const MaxPostImages = 3

// Post is a media update. Images and Video are mutually exclusive.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images,omitempty"`
	Video       string    `json:"video,omitempty"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	UserProfile string    `json:"userProfile,omitempty"`
	Date        string    `json:"date,omitempty"` // Set by the server
	LikedBy     []string  `json:"likedBy,omitempty"`
	LikeCount   int       `json:"likeCount"`
	Comments    []Comment `json:"comments,omitempty"`
}

func (p Post) Key() string { return p.ID }

// IsLikedBy reports whether userID is in the likedBy set.
func (p *Post) IsLikedBy(userID string) bool {
	return contains(p.LikedBy, userID)
}

// HasVideo reports whether the post carries the video variant.
func (p *Post) HasVideo() bool { return p.Video != "" }

// SharedPost wraps a Post with the sharing user and their commentary.
// It is deleted independently of the underlying Post.
type SharedPost struct {
	ID          string    `json:"id"`
	SharedBy    User      `json:"sharedBy"`
	Description string    `json:"description"`
	Post        Post      `json:"post"`
	LikedBy     []string  `json:"likedBy,omitempty"`
	LikeCount   int       `json:"likeCount"`
	Comments    []Comment `json:"comments,omitempty"`
}

func (s SharedPost) Key() string { return s.ID }

// IsLikedBy reports whether userID is in the likedBy set.
func (s *SharedPost) IsLikedBy(userID string) bool {
	return contains(s.LikedBy, userID)
}

// ShareRequest is the payload creating a SharedPost.
type ShareRequest struct {
	Description string `json:"description"`
	UserID      string `json:"userid"`
	PostID      string `json:"postId" validate:"required"`
}

// Comment belongs to a post and is editable only by its author.
type Comment struct {
	ID               string `json:"id"`
	PostID           string `json:"postId,omitempty"`
	Content          string `json:"content"`
	CommentBy        string `json:"commentBy"`
	CommentByID      string `json:"commentById"`
	CommentByProfile string `json:"commentByProfile,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

func (c Comment) Key() string { return c.ID }

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
