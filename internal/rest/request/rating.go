package request

type Rating struct {
	Rating int `json:"rating" binding:"required,min=1,max=10"`
}
