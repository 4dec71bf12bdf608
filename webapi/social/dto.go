package social

// FollowRequest toggles the caller's follow on another user.
type FollowRequest struct {
	FollowingID string `json:"following_id" validate:"required,uuid"`
}

// LikeRequest toggles the caller's like on a post.
type LikeRequest struct {
	PostID string `json:"post_id" validate:"required,uuid"`
}

// ViewRequest records the caller's view of a post.
type ViewRequest struct {
	PostID string `json:"post_id" validate:"required,uuid"`
}

// CreatePostRequest creates a post, or a comment when ParentPostID is
// set. A post must carry content or an image.
type CreatePostRequest struct {
	Content      string `json:"content" validate:"omitempty,max=10000"`
	Image        string `json:"image" validate:"omitempty,url"`
	ParentPostID string `json:"parent_post_id" validate:"omitempty,uuid"`
}
