package handler

import (
	"github.com/gin-gonic/gin"

	"postboard/internal/domain"
	"postboard/internal/service"
)

// PostHandler handles post upload, listing and deletion endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreateResized handles POST /api/posts/add
// @Summary Create a post with a resized image
// @Description Upload an image (resized to fit 500x800) with a caption
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Param caption formData string true "Caption"
// @Success 201 {object} APIResponse{data=domain.Post} "Post created"
// @Failure 400 {object} APIResponse "Missing caption or file, or undecodable image"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 500 {object} APIResponse "Upload failed"
// @Router /posts/add [post]
func (h *PostHandler) CreateResized(c *gin.Context) {
	h.create(c, true)
}

// CreateStreamed handles POST /api/posts/multer
// @Summary Create a post with the original image
// @Description Upload an image as-is, streamed to object storage, with a caption
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Param caption formData string true "Caption"
// @Success 201 {object} APIResponse{data=domain.Post} "Post created"
// @Failure 400 {object} APIResponse "Missing caption or file"
// @Failure 500 {object} APIResponse "Upload failed"
// @Router /posts/multer [post]
func (h *PostHandler) CreateStreamed(c *gin.Context) {
	h.create(c, false)
}

func (h *PostHandler) create(c *gin.Context, resize bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		HandleError(c, domain.Validation("image file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	post, err := h.postService.Create(c.Request.Context(), service.CreatePostInput{
		Caption: c.PostForm("caption"),
		File:    file,
		Header:  header,
		Resize:  resize,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, "Ok", post)
}

// List handles GET /api/posts
// @Summary List posts
// @Description List all posts with their CDN image URLs
// @Tags posts
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.PostView} "Posts"
// @Failure 500 {object} APIResponse "Listing failed"
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, "Ok", posts)
}

// Delete handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Delete the post record, its stored image and the CDN cache entry
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} APIResponse{data=domain.Post} "Post deleted"
// @Failure 404 {object} APIResponse "Post not found"
// @Failure 500 {object} APIResponse "Deletion failed"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	post, err := h.postService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, "Post deleted successfully", post)
}
