package httpresp

import "github.com/gin-gonic/gin"

// Toda operação pública responde no mesmo envelope:
// sucesso → {success: true, data: ...}
// falha   → escrita por httperr, {success: false, error: ...}
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(201, Envelope{Success: true, Data: data})
}

func List[T any](c *gin.Context, items []T) {
	c.JSON(200, Envelope{
		Success: true,
		Data: ListResponse[T]{
			Items: items,
			Total: len(items),
		},
	})
}
