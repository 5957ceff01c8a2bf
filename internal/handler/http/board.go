package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/dto"
	"personal-workspace/internal/middleware"
	"personal-workspace/internal/service"
)

const boardListPath = "/board"

func postPath(id uint) string     { return fmt.Sprintf("/board/view/%d", id) }
func postEditPath(id uint) string { return fmt.Sprintf("/board/edit/%d", id) }

// BoardHandler serves the discussion board.
type BoardHandler struct {
	boardService *service.BoardService
}

func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// List shows every post, newest first, filtered by ?query=.
func (h *BoardHandler) List(c *gin.Context) {
	identity := currentIdentity(c)
	query := c.Query("query")

	posts, err := h.boardService.ListPosts(c.Request.Context(), identity, query)
	if err != nil {
		// The list is still rendered, just empty.
		middleware.AddFlash(c, middleware.FlashError, "Failed to load the board. Please try again later.")
	}
	render(c, "board_list", dto.BoardListView{Posts: dto.NewPostViews(posts, identity), Query: query})
}

func (h *BoardHandler) WriteForm(c *gin.Context) {
	render(c, "write_post", nil)
}

func (h *BoardHandler) Write(c *gin.Context) {
	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Warn("Handler.Board.Write: Invalid input format")
		redirectWithFlash(c, "/board/write", middleware.FlashError, "Title and content are required.")
		return
	}

	_, err := h.boardService.CreatePost(c.Request.Context(), currentIdentity(c), form.Title, form.Content)
	if err != nil {
		HandleServiceError(c, err, recovery{
			Validation: "/board/write",
			Default:    boardListPath,
			Failed:     "Failed to create the post.",
		})
		return
	}
	redirectWithFlash(c, boardListPath, middleware.FlashSuccess, "Post created.")
}

// View shows one post with its comments.
func (h *BoardHandler) View(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, boardListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	identity := currentIdentity(c)
	post, comments, err := h.boardService.GetPost(c.Request.Context(), identity, id)
	if err != nil {
		HandleServiceError(c, err, recovery{Default: boardListPath, Failed: "Failed to load the post."})
		return
	}
	render(c, "view_post", dto.PostDetailView{
		Post:     dto.NewPostView(*post, identity),
		Comments: dto.NewCommentViews(comments),
	})
}

// EditForm shows the edit form; only the author gets it.
func (h *BoardHandler) EditForm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, boardListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	identity := currentIdentity(c)
	post, err := h.boardService.PostForEdit(c.Request.Context(), identity, id)
	if err != nil {
		HandleServiceError(c, err, recovery{
			Forbidden: postPath(id),
			Default:   boardListPath,
			Failed:    "Failed to load the post.",
		})
		return
	}
	render(c, "edit_post", dto.NewPostView(*post, identity))
}

func (h *BoardHandler) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, boardListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, postEditPath(id), middleware.FlashError, "Title and content are required.")
		return
	}

	_, err := h.boardService.UpdatePost(c.Request.Context(), currentIdentity(c), id, form.Title, form.Content)
	if err != nil {
		HandleServiceError(c, err, recovery{
			Validation: postEditPath(id),
			Forbidden:  postPath(id),
			NotFound:   boardListPath,
			Default:    postPath(id),
			Failed:     "Failed to update the post.",
		})
		return
	}
	redirectWithFlash(c, postPath(id), middleware.FlashSuccess, "Post updated.")
}

func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, boardListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	err := h.boardService.DeletePost(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		HandleServiceError(c, err, recovery{
			Forbidden: postPath(id),
			Default:   boardListPath,
			Failed:    "Failed to delete the post.",
		})
		return
	}
	redirectWithFlash(c, boardListPath, middleware.FlashSuccess, "Post deleted.")
}

func (h *BoardHandler) AddComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, boardListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	var form dto.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, postPath(id), middleware.FlashError, "Comment content is required.")
		return
	}

	_, err := h.boardService.AddComment(c.Request.Context(), currentIdentity(c), id, form.Content)
	if err != nil {
		HandleServiceError(c, err, recovery{
			Validation: postPath(id),
			NotFound:   boardListPath,
			Default:    postPath(id),
			Failed:     "Failed to add the comment.",
		})
		return
	}
	redirectWithFlash(c, postPath(id), middleware.FlashSuccess, "Comment added.")
}
