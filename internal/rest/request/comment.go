package request

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/moviestar/moviestar/domain"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("sortmode", func(fl validator.FieldLevel) bool {
			return domain.CommentSort(fl.Field().String()).Valid()
		})
	}
}

type Comment struct {
	Comment string `json:"comment" binding:"required,min=1,max=1200"`
}

type CommentVote struct {
	IsLike *bool `json:"isLike" binding:"required"`
}

// ListComments carries the query params of the comment list endpoint.
type ListComments struct {
	Sort string `form:"sort" binding:"omitempty,sortmode"`
}

func (l *ListComments) SortMode() domain.CommentSort {
	if l.Sort == "" {
		return domain.SortNewest
	}
	return domain.CommentSort(l.Sort)
}
